package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-genetics/internal/domain/genetics"
	"pet-genetics/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo    Repository
	catalog *genetics.Catalog
	log     logger.Logger
	now     func() time.Time

	// *rand.Rand no es seguro entre goroutines: se serializa con mu.
	mu  sync.Mutex
	rng genetics.Rand
}

func NewService(repo Repository, catalog *genetics.Catalog, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		repo:    repo,
		catalog: catalog,
		log:     log,
		now:     time.Now,
		rng:     genetics.NewSeededRand(time.Now().UnixNano()),
	}
}

func (s *Service) Catalog() *genetics.Catalog {
	return s.catalog
}

// WithRand ejecuta fn con un rng propio (si viene seed) o con el compartido del service.
func (s *Service) WithRand(seed *int64, fn func(rng genetics.Rand) error) error {
	if seed != nil {
		return fn(genetics.NewSeededRand(*seed))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.rng)
}

type CreateInput struct {
	Name  string
	Sex   string
	Stage string
	Seed  *int64 // opcional, para fundadores reproducibles
}

// CreateFounder crea una mascota de generación 0 con genotipo aleatorio.
func (s *Service) CreateFounder(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Pet{}, ErrInvalidInput
	}

	sex := SexUnknown
	if v := strings.TrimSpace(in.Sex); v != "" {
		sex = Sex(v)
		if !sex.valid() {
			return Pet{}, ErrInvalidInput
		}
	}

	stage := genetics.StageAdult
	if v := strings.TrimSpace(in.Stage); v != "" {
		st, ok := genetics.ParseLifeStage(v)
		if !ok {
			return Pet{}, ErrInvalidInput
		}
		stage = st
	}

	var code genetics.GeneticCode
	_ = s.WithRand(in.Seed, func(rng genetics.Rand) error {
		code = genetics.RandomGenotype(s.catalog, rng)
		return nil
	})

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Sex:         sex,
		Stage:       stage,
		Genetics:    code,
		Generation:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p, err := s.derive(p)
	if err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	s.log.Info("founder created", map[string]any{"pet_id": p.ID, "owner_user_id": ownerUserID, "genotype": genetics.Encode(p.Genetics)})
	return p, nil
}

type OffspringInput struct {
	OwnerUserID string
	Name        string
	Sex         Sex
	Parent1     Pet
	Parent2     Pet
	Outcome     genetics.BreedingOutcome
}

// RegisterOffspring persiste una cría ya calculada. Un solo Create: o queda todo o nada.
func (s *Service) RegisterOffspring(ctx context.Context, in OffspringInput) (Pet, error) {
	if strings.TrimSpace(in.OwnerUserID) == "" || strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Sex == "" {
		in.Sex = SexUnknown
	}

	gen := in.Parent1.Generation
	if in.Parent2.Generation > gen {
		gen = in.Parent2.Generation
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: in.OwnerUserID,
		Name:        strings.TrimSpace(in.Name),
		Sex:         in.Sex,
		Stage:       genetics.StageBaby,
		Genetics:    in.Outcome.Child,
		Phenotype:   in.Outcome.Phenotype,
		Stats:       in.Outcome.Stats,
		Parent1ID:   in.Parent1.ID,
		Parent2ID:   in.Parent2.ID,
		Generation:  gen + 1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// GetByID valida el genotipo guardado y recalcula fenotipo y stats.
func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Pet{}, err
	}
	return s.derive(p)
}

// ListByOwner omite (y loguea) los registros con genética corrupta.
func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	items, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	out := make([]Pet, 0, len(items))
	for _, p := range items {
		d, err := s.derive(p)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name  *string
	Stage *string
}

// UpdateProfile sólo toca nombre y stage; la genética es inmutable.
func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Stage != nil {
		st, ok := genetics.ParseLifeStage(strings.TrimSpace(*in.Stage))
		if !ok {
			return Pet{}, ErrInvalidInput
		}
		p.Stage = st
	}

	p, err = s.derive(p)
	if err != nil {
		return Pet{}, err
	}
	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) derive(p Pet) (Pet, error) {
	ph, err := genetics.ResolvePhenotype(p.Genetics, s.catalog)
	if err != nil {
		s.log.Warn("pet genetics integrity check failed", map[string]any{"pet_id": p.ID, "err": err})
		return Pet{}, fmt.Errorf("pet %s: %w", p.ID, err)
	}
	st, err := genetics.DeriveStats(p.Genetics, ph, s.catalog, p.Stage)
	if err != nil {
		return Pet{}, fmt.Errorf("pet %s: %w", p.ID, err)
	}
	p.Phenotype = ph
	p.Stats = st
	return p, nil
}
