package breeding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-genetics/internal/domain/genetics"
	"pet-genetics/internal/domain/pets"
	"pet-genetics/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// Las reglas de juego (cooldowns, adultez) las maneja la UI; acá sólo ownership.
type Service struct {
	pets *pets.Service
	log  logger.Logger
}

func NewService(petsSvc *pets.Service, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{pets: petsSvc, log: log}
}

type BreedInput struct {
	Parent1ID string
	Parent2ID string
	Name      string
	Seed      *int64
}

type Result struct {
	Child   pets.Pet
	Outcome genetics.BreedingOutcome
}

// Breed calcula la cría completa antes de persistir; si algo falla no queda nada guardado.
func (s *Service) Breed(ctx context.Context, ownerUserID string, in BreedInput) (Result, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Result{}, ErrInvalidInput
	}
	p1, p2, err := s.loadParents(ctx, ownerUserID, in.Parent1ID, in.Parent2ID)
	if err != nil {
		return Result{}, err
	}

	cat := s.pets.Catalog()
	var (
		outcome genetics.BreedingOutcome
		sex     pets.Sex
	)
	err = s.pets.WithRand(in.Seed, func(rng genetics.Rand) error {
		var err error
		outcome, err = genetics.Breed(p1.Genetics, p2.Genetics, cat, rng)
		if err != nil {
			return err
		}
		sex = pets.SexFemale
		if rng.IntN(2) == 1 {
			sex = pets.SexMale
		}
		return nil
	})
	if err != nil {
		s.log.Warn("breeding rejected", map[string]any{"parent1_id": p1.ID, "parent2_id": p2.ID, "err": err})
		return Result{}, err
	}

	child, err := s.pets.RegisterOffspring(ctx, pets.OffspringInput{
		OwnerUserID: ownerUserID,
		Name:        in.Name,
		Sex:         sex,
		Parent1:     p1,
		Parent2:     p2,
		Outcome:     outcome,
	})
	if err != nil {
		return Result{}, err
	}

	s.log.Info("pet bred", map[string]any{
		"child_id":    child.ID,
		"parent1_id":  p1.ID,
		"parent2_id":  p2.ID,
		"generation":  child.Generation,
		"genotype":    genetics.Encode(child.Genetics),
		"rarity_tier": child.Stats.RarityTier,
	})
	return Result{Child: child, Outcome: outcome}, nil
}

type PreviewInput struct {
	Parent1ID string
	Parent2ID string
	Samples   int
	Seed      *int64
}

type Preview struct {
	Squares  []genetics.PunnettResult
	Forecast genetics.LitterForecast
}

// Preview no persiste nada: cuadros de Punnett por gen + pronóstico simulado.
func (s *Service) Preview(ctx context.Context, ownerUserID string, in PreviewInput) (Preview, error) {
	p1, p2, err := s.loadParents(ctx, ownerUserID, in.Parent1ID, in.Parent2ID)
	if err != nil {
		return Preview{}, err
	}

	cat := s.pets.Catalog()
	squares, err := genetics.CrossSquares(p1.Genetics, p2.Genetics, cat)
	if err != nil {
		return Preview{}, err
	}

	var forecast genetics.LitterForecast
	err = s.pets.WithRand(in.Seed, func(rng genetics.Rand) error {
		var err error
		forecast, err = genetics.Forecast(p1.Genetics, p2.Genetics, cat, rng, in.Samples)
		return err
	})
	if err != nil {
		return Preview{}, err
	}
	return Preview{Squares: squares, Forecast: forecast}, nil
}

func (s *Service) loadParents(ctx context.Context, ownerUserID, id1, id2 string) (pets.Pet, pets.Pet, error) {
	id1, id2 = strings.TrimSpace(id1), strings.TrimSpace(id2)
	if strings.TrimSpace(ownerUserID) == "" || id1 == "" || id2 == "" {
		return pets.Pet{}, pets.Pet{}, ErrInvalidInput
	}
	p1, err := s.loadParent(ctx, ownerUserID, id1)
	if err != nil {
		return pets.Pet{}, pets.Pet{}, err
	}
	p2, err := s.loadParent(ctx, ownerUserID, id2)
	if err != nil {
		return pets.Pet{}, pets.Pet{}, err
	}
	return p1, p2, nil
}

func (s *Service) loadParent(ctx context.Context, ownerUserID, id string) (pets.Pet, error) {
	owner, err := s.pets.OwnerOf(ctx, id)
	if err != nil {
		return pets.Pet{}, err
	}
	if owner != ownerUserID {
		return pets.Pet{}, ErrForbidden
	}
	p, err := s.pets.GetByID(ctx, id)
	if errors.Is(err, genetics.ErrValidation) {
		// genética de otra versión del catálogo o corrupta: no se puede cruzar
		return pets.Pet{}, fmt.Errorf("%w: %w", genetics.ErrIncompatibleParents, err)
	}
	return p, err
}
