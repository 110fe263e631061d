package pets

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-genetics/internal/domain/genetics"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID    map[string]Pet
	creates int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.creates++
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

// -------------------------
// Helpers
// -------------------------

func newTestService(t *testing.T) (*Service, *testRepo) {
	t.Helper()

	cat, err := genetics.DefaultCatalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	repo := newTestRepo()
	svc := NewService(repo, cat, nil)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func seed(v int64) *int64 { return &v }

// -------------------------
// Tests
// -------------------------

func TestCreateFounder_DefaultsAndValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateFounder(ctx, "u1", CreateInput{Name: "  Milo  "})
	if err != nil {
		t.Fatalf("CreateFounder error: %v", err)
	}
	if p.Name != "Milo" || p.Sex != SexUnknown || p.Stage != genetics.StageAdult || p.Generation != 0 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if !p.IsFounder() {
		t.Fatalf("expected founder without parents")
	}
	if err := genetics.Validate(p.Genetics, svc.Catalog()); err != nil {
		t.Fatalf("founder genetics should validate: %v", err)
	}
	if len(p.Phenotype) == 0 || p.Stats.RarityTier == "" {
		t.Fatalf("expected derived phenotype and stats, got %+v", p)
	}

	bad := []struct {
		owner string
		in    CreateInput
	}{
		{"", CreateInput{Name: "X"}},
		{"u1", CreateInput{Name: "   "}},
		{"u1", CreateInput{Name: "X", Sex: "robot"}},
		{"u1", CreateInput{Name: "X", Stage: "ancient"}},
	}
	for _, tc := range bad {
		if _, err := svc.CreateFounder(ctx, tc.owner, tc.in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", tc.in, err)
		}
	}
}

func TestCreateFounder_SeedIsReproducible(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateFounder(ctx, "u1", CreateInput{Name: "A", Seed: seed(42)})
	if err != nil {
		t.Fatalf("CreateFounder error: %v", err)
	}
	b, err := svc.CreateFounder(ctx, "u1", CreateInput{Name: "B", Seed: seed(42)})
	if err != nil {
		t.Fatalf("CreateFounder error: %v", err)
	}
	if !a.Genetics.Equal(b.Genetics) {
		t.Fatalf("expected same genetics for same seed: %s vs %s", genetics.Encode(a.Genetics), genetics.Encode(b.Genetics))
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct ids")
	}
}

func TestGetByID_CorruptGeneticsIsValidationError(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateFounder(ctx, "u1", CreateInput{Name: "Milo", Seed: seed(1)})
	if err != nil {
		t.Fatalf("CreateFounder error: %v", err)
	}

	// alguien borró un gen directo en storage
	stored := repo.byID[p.ID]
	genes := map[genetics.GeneID]genetics.Genotype{}
	for id, gt := range stored.Genetics.Genotypes {
		if id != genetics.GeneID("coat_color") {
			genes[id] = gt
		}
	}
	stored.Genetics.Genotypes = genes
	repo.byID[p.ID] = stored

	if _, err := svc.GetByID(ctx, p.ID); !errors.Is(err, genetics.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	// el listado omite el registro corrupto en vez de fallar
	if _, err := svc.CreateFounder(ctx, "u1", CreateInput{Name: "Sano"}); err != nil {
		t.Fatalf("CreateFounder error: %v", err)
	}
	items, err := svc.ListByOwner(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Sano" {
		t.Fatalf("expected only the healthy pet, got %+v", items)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateProfile_StageRecomputesMarketValue(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateFounder(ctx, "u1", CreateInput{Name: "Milo", Stage: "juvenile", Seed: seed(7)})
	if err != nil {
		t.Fatalf("CreateFounder error: %v", err)
	}

	elder := "elder"
	updated, err := svc.UpdateProfile(ctx, p.ID, UpdateProfileInput{Stage: &elder})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if updated.Stage != genetics.StageElder || updated.Name != "Milo" {
		t.Fatalf("unexpected update: %+v", updated)
	}
	if updated.Stats.MarketValue >= p.Stats.MarketValue {
		t.Fatalf("expected elder market value below juvenile: %d vs %d", updated.Stats.MarketValue, p.Stats.MarketValue)
	}
	if updated.Stats.RarityScore != p.Stats.RarityScore {
		t.Fatalf("rarity must not depend on stage")
	}
	if !repo.byID[p.ID].Genetics.Equal(p.Genetics) {
		t.Fatalf("genetics must not change on update")
	}

	bad := "ancient"
	if _, err := svc.UpdateProfile(ctx, p.ID, UpdateProfileInput{Stage: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	empty := " "
	if _, err := svc.UpdateProfile(ctx, p.ID, UpdateProfileInput{Name: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
}

func TestRegisterOffspring_GenerationAndLineage(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	p1, _ := svc.CreateFounder(ctx, "u1", CreateInput{Name: "A", Seed: seed(1)})
	p2, _ := svc.CreateFounder(ctx, "u1", CreateInput{Name: "B", Seed: seed(2)})
	p2.Generation = 3

	outcome, err := genetics.Breed(p1.Genetics, p2.Genetics, svc.Catalog(), genetics.NewSeededRand(9))
	if err != nil {
		t.Fatalf("Breed error: %v", err)
	}

	child, err := svc.RegisterOffspring(ctx, OffspringInput{
		OwnerUserID: "u1",
		Name:        "C",
		Parent1:     p1,
		Parent2:     p2,
		Outcome:     outcome,
	})
	if err != nil {
		t.Fatalf("RegisterOffspring error: %v", err)
	}
	if child.Generation != 4 || child.Parent1ID != p1.ID || child.Parent2ID != p2.ID {
		t.Fatalf("unexpected lineage: %+v", child)
	}
	if child.Stage != genetics.StageBaby || child.Sex != SexUnknown {
		t.Fatalf("unexpected child defaults: %+v", child)
	}
	if repo.creates != 3 {
		t.Fatalf("expected 3 creates, got %d", repo.creates)
	}

	if _, err := svc.RegisterOffspring(ctx, OffspringInput{OwnerUserID: "u1", Outcome: outcome}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}
}
