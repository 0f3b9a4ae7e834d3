// Package catalog loads the garden and plan offering from a YAML file and
// serves it as an immutable in-memory catalog.
package catalog

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"plantheon/config"
	"plantheon/internal/domain/entity"
	"plantheon/internal/domain/repository"
	"plantheon/internal/errors"
)

type catalogRepository struct {
	gardens     []entity.Garden
	gardensByID map[int]*entity.Garden
	plans       []entity.Plan
	plansByID   map[string]*entity.Plan
}

type catalogFile struct {
	Gardens []entity.Garden `koanf:"gardens"`
	Plans   []entity.Plan   `koanf:"plans"`
}

// New reads the catalog file once at startup. The repository never reloads;
// swapping the offering means editing the file and restarting.
func New(cfg *config.Config) (repository.CatalogRepository, error) {
	koanfInstance := koanf.New(".")
	if err := koanfInstance.Load(file.Provider(cfg.Catalog.Path), yaml.Parser()); err != nil {
		return nil, errors.Wrap(err, "load catalog file")
	}

	var parsed catalogFile
	if err := koanfInstance.Unmarshal("", &parsed); err != nil {
		return nil, errors.Wrap(err, "unmarshal catalog")
	}
	if len(parsed.Gardens) == 0 {
		return nil, errors.New("catalog has no gardens")
	}
	if len(parsed.Plans) == 0 {
		return nil, errors.New("catalog has no plans")
	}

	repo := &catalogRepository{
		gardens:     parsed.Gardens,
		gardensByID: make(map[int]*entity.Garden, len(parsed.Gardens)),
		plans:       parsed.Plans,
		plansByID:   make(map[string]*entity.Plan, len(parsed.Plans)),
	}
	for i := range repo.gardens {
		garden := &repo.gardens[i]
		if _, exists := repo.gardensByID[garden.ID]; exists {
			return nil, errors.Errorf("duplicate garden id %d", garden.ID)
		}
		repo.gardensByID[garden.ID] = garden
	}
	for i := range repo.plans {
		plan := &repo.plans[i]
		if _, exists := repo.plansByID[plan.ID]; exists {
			return nil, errors.Errorf("duplicate plan id %q", plan.ID)
		}
		repo.plansByID[plan.ID] = plan
	}

	return repo, nil
}

func (r *catalogRepository) Gardens() []entity.Garden {
	out := make([]entity.Garden, len(r.gardens))
	copy(out, r.gardens)
	return out
}

func (r *catalogRepository) GardenByID(id int) (*entity.Garden, error) {
	garden, ok := r.gardensByID[id]
	if !ok {
		return nil, repository.ErrGardenNotFound
	}
	clone := *garden
	return &clone, nil
}

func (r *catalogRepository) Plans() []entity.Plan {
	out := make([]entity.Plan, len(r.plans))
	copy(out, r.plans)
	return out
}

func (r *catalogRepository) PlanByID(id string) (*entity.Plan, error) {
	plan, ok := r.plansByID[id]
	if !ok {
		return nil, repository.ErrPlanNotFound
	}
	clone := *plan
	return &clone, nil
}
