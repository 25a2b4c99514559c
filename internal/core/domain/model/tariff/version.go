package tariff

import (
	"errors"
	"fmt"

	"expedition/internal/pkg/errs"
)

// NewVersionIndice is the sentinel indice carried by a version that has not
// been finalized yet. Finalization assigns the next available indice.
const NewVersionIndice = 0

// ErrVersionIsNotConstructed is returned when a Version instance was not
// created through NewVersion.
var ErrVersionIsNotConstructed = errors.New("Version must be created via NewVersion")

// Version is a tariff table version ("indice"). It holds one Zone entry per
// destination zone; zone ids are unique within a version. The active version
// is the one consulted when pricing new shipment requests.
type Version struct {
	indice int
	active bool
	zones  []Zone

	isConstructed bool
}

// NewVersion creates a tariff version from the given zones.
// The indice may be NewVersionIndice for a version awaiting finalization.
// Zone ids must be unique within the version.
func NewVersion(indice int, active bool, zones []Zone) (*Version, error) {
	if indice < 0 {
		return nil, errs.NewVersionIsInvalidErrorWithCause(
			"indice",
			fmt.Errorf("%d is negative", indice),
		)
	}

	seen := make(map[int]struct{}, len(zones))
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[z.ID()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"zones",
				fmt.Errorf("zone id %d appears more than once", z.ID()),
			)
		}
		seen[z.ID()] = struct{}{}
	}

	copied := make([]Zone, len(zones))
	copy(copied, zones)

	return &Version{
		indice:        indice,
		active:        active,
		zones:         copied,
		isConstructed: true,
	}, nil
}

// Validate ensures the Version instance was created via NewVersion.
func (v *Version) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVersionIsNotConstructed
	}
	return nil
}

// Indice returns the version identifier.
func (v *Version) Indice() int { return v.indice }

// IsActive reports whether this version is currently usable for pricing.
func (v *Version) IsActive() bool { return v.active }

// IsNew reports whether the version still carries the sentinel indice.
func (v *Version) IsNew() bool { return v.indice == NewVersionIndice }

// Zones returns a copy of the version's zone entries in order.
func (v *Version) Zones() []Zone {
	out := make([]Zone, len(v.zones))
	copy(out, v.zones)
	return out
}

// Zone returns the zone entry with the given id.
// Returns *errs.ObjectNotFoundError when the id is absent from this version.
func (v *Version) Zone(zoneID int) (Zone, error) {
	for _, z := range v.zones {
		if z.ID() == zoneID {
			return z, nil
		}
	}
	return Zone{}, errs.NewObjectNotFoundError("zone", fmt.Sprintf("%d", zoneID))
}

// PriceForZone returns the expedition amount charged for the given zone.
// Returns *errs.ObjectNotFoundError when the zone is absent from this version.
func (v *Version) PriceForZone(zoneID int) (int64, error) {
	z, err := v.Zone(zoneID)
	if err != nil {
		return 0, err
	}
	return z.ExpeditionAmount(), nil
}

// Finalize assigns a concrete indice to a sentinel version and marks it active.
// Returns an error if the version already carries a concrete indice.
func (v *Version) Finalize(indice int) error {
	if !v.IsNew() {
		return errs.NewVersionIsInvalidErrorWithCause(
			"indice",
			fmt.Errorf("version %d is already finalized", v.indice),
		)
	}
	if indice <= NewVersionIndice {
		return errs.NewVersionIsInvalidErrorWithCause(
			"indice",
			fmt.Errorf("%d is not a valid indice", indice),
		)
	}

	v.indice = indice
	v.active = true
	return nil
}

// NextIndice returns the indice to assign to the next finalized version:
// one past the highest existing indice, starting at 1.
func NextIndice(existing []int) int {
	next := NewVersionIndice
	for _, i := range existing {
		if i > next {
			next = i
		}
	}
	return next + 1
}
