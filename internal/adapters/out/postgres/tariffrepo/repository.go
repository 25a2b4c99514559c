package tariffrepo

import (
	"context"
	"errors"
	"fmt"

	"expedition/internal/core/domain/model/tariff"
	"expedition/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTariffRepository implements ports.TariffRepository using GORM.
// Tariff versions are keyed by indice rather than UUID, so the repository
// does not participate in aggregate tracking.
type GormTariffRepository struct {
	db *gorm.DB
}

// NewGormTariffRepository creates a new GORM tariff repository.
func NewGormTariffRepository(db *gorm.DB) *GormTariffRepository {
	return &GormTariffRepository{db: db}
}

// Save persists a version together with its zones. An existing indice is
// replaced wholesale: the version row is upserted and the zone set rewritten.
func (r *GormTariffRepository) Save(ctx context.Context, version *tariff.Version) error {
	if err := version.Validate(); err != nil {
		return err
	}

	versionDTO, zoneDTOs := fromDomain(version)

	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "indice"}},
		DoUpdates: clause.AssignmentColumns([]string{"active"}),
	}).Create(&versionDTO).Error
	if err != nil {
		return errs.NewPersistenceError("save tariff version", err)
	}

	if err = db.Delete(&ZoneDTO{}, "version_indice = ?", versionDTO.Indice).Error; err != nil {
		return errs.NewPersistenceError("replace tariff zones", err)
	}

	if len(zoneDTOs) > 0 {
		if err = db.Create(&zoneDTOs).Error; err != nil {
			return errs.NewPersistenceError("save tariff zones", err)
		}
	}

	return nil
}

// Get retrieves the version with the given indice.
func (r *GormTariffRepository) Get(ctx context.Context, indice int) (*tariff.Version, error) {
	var dto VersionDTO
	err := r.db.WithContext(ctx).First(&dto, "indice = ?", indice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tariff version", fmt.Sprintf("%d", indice))
		}
		return nil, errs.NewPersistenceError("get tariff version", err)
	}

	return r.load(ctx, dto)
}

// GetActive retrieves the active version used for pricing. When several
// versions are flagged active the one with the highest indice wins.
func (r *GormTariffRepository) GetActive(ctx context.Context) (*tariff.Version, error) {
	var dto VersionDTO
	err := r.db.WithContext(ctx).
		Order("indice DESC").
		First(&dto, "active = ?", true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tariff version", "active")
		}
		return nil, errs.NewPersistenceError("get active tariff version", err)
	}

	return r.load(ctx, dto)
}

// GetAll retrieves every stored version ordered by indice.
func (r *GormTariffRepository) GetAll(ctx context.Context) ([]*tariff.Version, error) {
	var dtos []VersionDTO
	err := r.db.WithContext(ctx).Order("indice").Find(&dtos).Error
	if err != nil {
		return nil, errs.NewPersistenceError("list tariff versions", err)
	}

	versions := make([]*tariff.Version, 0, len(dtos))
	for _, dto := range dtos {
		version, loadErr := r.load(ctx, dto)
		if loadErr != nil {
			return nil, loadErr
		}
		versions = append(versions, version)
	}

	return versions, nil
}

// MaxIndice returns the highest stored indice, or 0 when no versions exist.
func (r *GormTariffRepository) MaxIndice(ctx context.Context) (int, error) {
	var maxIndice int
	err := r.db.WithContext(ctx).
		Model(&VersionDTO{}).
		Select("COALESCE(MAX(indice), 0)").
		Scan(&maxIndice).Error
	if err != nil {
		return 0, errs.NewPersistenceError("max tariff indice", err)
	}

	return maxIndice, nil
}

func (r *GormTariffRepository) load(ctx context.Context, dto VersionDTO) (*tariff.Version, error) {
	var zoneDTOs []ZoneDTO
	err := r.db.WithContext(ctx).
		Order("position").
		Find(&zoneDTOs, "version_indice = ?", dto.Indice).Error
	if err != nil {
		return nil, errs.NewPersistenceError("get tariff zones", err)
	}

	return toDomain(dto, zoneDTOs)
}
