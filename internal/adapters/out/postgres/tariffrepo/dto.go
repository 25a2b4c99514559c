// Package tariffrepo provides data transfer objects and mapping functions for
// tariff version persistence. A version row owns its zone rows; saving a
// version replaces the zone set wholesale.
package tariffrepo

import (
	"expedition/internal/core/domain/model/tariff"
)

// VersionDTO represents the database structure for a tariff version.
type VersionDTO struct {
	Indice int  `gorm:"primaryKey;autoIncrement:false"`
	Active bool `gorm:"index"`
}

// TableName specifies the database table name for tariff versions.
func (VersionDTO) TableName() string {
	return "tariff_versions"
}

// ZoneDTO represents the database structure for one zone entry of a version.
type ZoneDTO struct {
	VersionIndice     int `gorm:"primaryKey;autoIncrement:false"`
	ZoneID            int `gorm:"primaryKey;autoIncrement:false"`
	ZoneName          string
	BaseAmount        int64
	PrestationPercent float64
	PrestationAmount  int64
	ExpeditionAmount  int64
	Position          int
}

// TableName specifies the database table name for tariff zones.
func (ZoneDTO) TableName() string {
	return "tariff_zones"
}

// fromDomain converts a tariff version aggregate to its database rows.
func fromDomain(version *tariff.Version) (VersionDTO, []ZoneDTO) {
	zones := version.Zones()
	zoneDTOs := make([]ZoneDTO, 0, len(zones))
	for i, z := range zones {
		zoneDTOs = append(zoneDTOs, ZoneDTO{
			VersionIndice:     version.Indice(),
			ZoneID:            z.ID(),
			ZoneName:          z.Name(),
			BaseAmount:        z.BaseAmount(),
			PrestationPercent: z.PrestationPercent(),
			PrestationAmount:  z.PrestationAmount(),
			ExpeditionAmount:  z.ExpeditionAmount(),
			Position:          i,
		})
	}

	return VersionDTO{
		Indice: version.Indice(),
		Active: version.IsActive(),
	}, zoneDTOs
}

// toDomain converts database rows to a tariff version aggregate.
// Zone rows must already be sorted by position.
func toDomain(dto VersionDTO, zoneDTOs []ZoneDTO) (*tariff.Version, error) {
	zones := make([]tariff.Zone, 0, len(zoneDTOs))
	for _, z := range zoneDTOs {
		zone, err := tariff.NewZone(z.ZoneID, z.ZoneName, z.BaseAmount, z.PrestationPercent)
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}

	return tariff.NewVersion(dto.Indice, dto.Active, zones)
}
