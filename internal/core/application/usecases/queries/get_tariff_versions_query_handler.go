package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetTariffVersionsQueryHandler retrieves tariff versions and their zones.
type GetTariffVersionsQueryHandler struct {
	db *gorm.DB
}

// NewGetTariffVersionsQueryHandler creates a handler for tariff listing queries.
func NewGetTariffVersionsQueryHandler(db *gorm.DB) GetTariffVersionsQueryHandler {
	return GetTariffVersionsQueryHandler{db: db}
}

// Handle executes the listing query.
// Returns versions ordered by indice, each with its zones in stored order.
func (h GetTariffVersionsQueryHandler) Handle(
	ctx context.Context,
	query GetTariffVersionsQuery,
) ([]TariffVersionResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			v.indice,
			v.active,
			z.zone_id,
			z.zone_name,
			z.base_amount,
			z.prestation_percent,
			z.prestation_amount,
			z.expedition_amount
		FROM tariff_versions v
		LEFT JOIN tariff_zones z ON z.version_indice = v.indice
		ORDER BY v.indice, z.position
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]TariffVersionResponse, 0)
	byIndice := make(map[int]int)

	for rows.Next() {
		var indice int
		var active bool
		var zoneID *int
		var zoneName *string
		var baseAmount, prestationAmount, expeditionAmount *int64
		var prestationPercent *float64

		if err = rows.Scan(
			&indice,
			&active,
			&zoneID,
			&zoneName,
			&baseAmount,
			&prestationPercent,
			&prestationAmount,
			&expeditionAmount,
		); err != nil {
			return nil, err
		}

		idx, seen := byIndice[indice]
		if !seen {
			versions = append(versions, TariffVersionResponse{
				Indice: indice,
				Active: active,
				Zones:  make([]ZoneResponse, 0),
			})
			idx = len(versions) - 1
			byIndice[indice] = idx
		}

		// A version without zones yields one row with NULL zone columns.
		if zoneID == nil {
			continue
		}

		versions[idx].Zones = append(versions[idx].Zones, ZoneResponse{
			ZoneID:            *zoneID,
			ZoneName:          *zoneName,
			BaseAmount:        *baseAmount,
			PrestationPercent: *prestationPercent,
			PrestationAmount:  *prestationAmount,
			ExpeditionAmount:  *expeditionAmount,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return versions, nil
}
