package tariff

import (
	"errors"
	"fmt"
	"math"

	"expedition/internal/pkg/errs"
)

// ErrZoneIsNotConstructed is returned when a Zone value was not created via NewZone.
var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone")

// Zone is the per-destination-zone entry of a tariff version. It carries the
// two editable figures (base amount and prestation percentage) and the two
// derived figures (prestation amount and expedition amount).
//
// The derived figures are never independently settable: they are recomputed
// together from the current base amount and percentage, whichever of the two
// was edited last. Amounts are integer minor currency units.
type Zone struct {
	id   int
	name string

	baseAmount        int64
	prestationPercent float64

	prestationAmount int64
	expeditionAmount int64

	isConstructed bool
}

// NewZone creates a Zone and derives its prestation and expedition amounts.
// The base amount and the percentage must not be negative.
func NewZone(id int, name string, baseAmount int64, prestationPercent float64) (Zone, error) {
	if name == "" {
		return Zone{}, errs.NewValueIsRequiredError("zone name")
	}
	if baseAmount < 0 {
		return Zone{}, errs.NewValueIsInvalidErrorWithCause(
			"base amount",
			fmt.Errorf("%d is negative", baseAmount),
		)
	}
	if prestationPercent < 0 {
		return Zone{}, errs.NewValueIsInvalidErrorWithCause(
			"prestation percentage",
			fmt.Errorf("%f is negative", prestationPercent),
		)
	}

	z := Zone{
		id:                id,
		name:              name,
		baseAmount:        baseAmount,
		prestationPercent: prestationPercent,
		isConstructed:     true,
	}
	return z.Recompute(), nil
}

// Validate ensures the Zone value was created via NewZone.
func (z Zone) Validate() error {
	if !z.isConstructed {
		return ErrZoneIsNotConstructed
	}
	return nil
}

// Recompute derives the prestation amount and the expedition amount from the
// current base amount and prestation percentage:
//
//	prestation = round(base * percent / 100)   (half-up)
//	expedition = base + prestation
//
// Recompute is idempotent: applying it twice with unchanged inputs yields the
// same derived figures. Both derived fields always change together.
func (z Zone) Recompute() Zone {
	z.prestationAmount = int64(math.Round(float64(z.baseAmount) * z.prestationPercent / 100))
	z.expeditionAmount = z.baseAmount + z.prestationAmount
	return z
}

// WithBaseAmount returns a copy with a new base amount and both derived
// figures recomputed against the current percentage.
func (z Zone) WithBaseAmount(baseAmount int64) (Zone, error) {
	if baseAmount < 0 {
		return Zone{}, errs.NewValueIsInvalidErrorWithCause(
			"base amount",
			fmt.Errorf("%d is negative", baseAmount),
		)
	}
	z.baseAmount = baseAmount
	return z.Recompute(), nil
}

// WithPrestationPercent returns a copy with a new prestation percentage and
// both derived figures recomputed against the current base amount.
func (z Zone) WithPrestationPercent(percent float64) (Zone, error) {
	if percent < 0 {
		return Zone{}, errs.NewValueIsInvalidErrorWithCause(
			"prestation percentage",
			fmt.Errorf("%f is negative", percent),
		)
	}
	z.prestationPercent = percent
	return z.Recompute(), nil
}

// ID returns the zone identifier, unique within a tariff version.
func (z Zone) ID() int { return z.id }

// Name returns the destination zone name.
func (z Zone) Name() string { return z.name }

// BaseAmount returns the base amount for the zone.
func (z Zone) BaseAmount() int64 { return z.baseAmount }

// PrestationPercent returns the service-fee rate as a percentage.
func (z Zone) PrestationPercent() float64 { return z.prestationPercent }

// PrestationAmount returns the derived service-fee amount.
func (z Zone) PrestationAmount() int64 { return z.prestationAmount }

// ExpeditionAmount returns the derived total charged for the zone.
func (z Zone) ExpeditionAmount() int64 { return z.expeditionAmount }
