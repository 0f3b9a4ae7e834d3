package repository

import (
	"errors"

	"plantheon/internal/domain/entity"
)

// Catalog lookup errors.
var (
	ErrGardenNotFound = errors.New("garden not found")
	ErrPlanNotFound   = errors.New("plan not found")
)

// CatalogRepository serves the garden and plan catalog. The catalog is
// reference data loaded once at startup and immutable afterwards, so the
// methods take no context and never touch storage.
type CatalogRepository interface {
	// Gardens returns all catalog entries in their configured order.
	Gardens() []entity.Garden

	// GardenByID returns a single catalog entry, or ErrGardenNotFound.
	GardenByID(id int) (*entity.Garden, error)

	// Plans returns all subscription tiers in their configured order.
	Plans() []entity.Plan

	// PlanByID returns a single subscription tier, or ErrPlanNotFound.
	PlanByID(id string) (*entity.Plan, error)
}
