package ports

import (
	"context"

	"expedition/internal/core/domain/model/tariff"
)

// TariffRepository defines the persistence contract for tariff versions.
type TariffRepository interface {
	// Save persists a version. Saving an indice that already exists replaces
	// the stored version entirely: the latest save for a given indice wins.
	Save(ctx context.Context, version *tariff.Version) error

	// Get retrieves the version with the given indice.
	Get(ctx context.Context, indice int) (*tariff.Version, error)

	// GetActive retrieves the active version used for pricing new requests.
	GetActive(ctx context.Context) (*tariff.Version, error)

	// GetAll retrieves every stored version ordered by indice.
	GetAll(ctx context.Context) ([]*tariff.Version, error)

	// MaxIndice returns the highest stored indice, or 0 when none exist.
	MaxIndice(ctx context.Context) (int, error)
}
