package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"pet-genetics/internal/domain/genetics"
	"pet-genetics/internal/domain/pets"

	"github.com/google/uuid"
)

// Necesita un Postgres real: PG_TEST_DSN=postgres://... go test ./internal/adapters/storage/postgres
func openTestDB(t *testing.T) *PetsRepo {
	t.Helper()

	dsn := os.Getenv("PG_TEST_DSN")
	if dsn == "" {
		t.Skip("PG_TEST_DSN not set")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return NewPetsRepo(db)
}

func TestPetsRepo_RoundTrip(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	cat, err := genetics.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	code := genetics.RandomGenotype(cat, genetics.NewSeededRand(4))
	ph, err := genetics.ResolvePhenotype(code, cat)
	if err != nil {
		t.Fatalf("phenotype: %v", err)
	}

	owner := "pg-test-" + uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)
	founder := pets.Pet{
		ID:          uuid.NewString(),
		OwnerUserID: owner,
		Name:        "Luna",
		Sex:         pets.SexFemale,
		Stage:       genetics.StageAdult,
		Genetics:    code,
		Phenotype:   ph,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(ctx, founder); err != nil {
		t.Fatalf("create founder: %v", err)
	}

	child := founder
	child.ID = uuid.NewString()
	child.Name = "Cría"
	child.Parent1ID = founder.ID
	child.Parent2ID = founder.ID
	child.Generation = 1
	child.CreatedAt = now.Add(time.Second)
	if err := repo.Create(ctx, child); err != nil {
		t.Fatalf("create child: %v", err)
	}

	got, err := repo.GetByID(ctx, child.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Genetics.Equal(code) || got.Parent1ID != founder.ID || got.Generation != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Phenotype[genetics.TraitCoatColor] != ph[genetics.TraitCoatColor] {
		t.Fatalf("phenotype cache mismatch: %v vs %v", got.Phenotype, ph)
	}

	items, err := repo.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != founder.ID || !items[0].IsFounder() {
		t.Fatalf("unexpected list: %+v", items)
	}

	if _, err := repo.GetByID(ctx, uuid.NewString()); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// fakeRow simula una fila de pets para probar scanPet sin base.
type fakeRow struct {
	id, owner string
	genotype  string
	phenotype []byte
	stats     []byte
}

func (f fakeRow) Scan(dest ...any) error {
	*dest[0].(*string) = f.id
	*dest[1].(*string) = f.owner
	*dest[2].(*string) = "Luna"
	*dest[3].(*pets.Sex) = pets.SexFemale
	*dest[4].(*genetics.LifeStage) = genetics.StageAdult
	*dest[5].(*string) = f.genotype
	*dest[6].(*[]byte) = f.phenotype
	*dest[7].(*[]byte) = f.stats
	*dest[8].(*sql.NullString) = sql.NullString{}
	*dest[9].(*sql.NullString) = sql.NullString{}
	*dest[10].(*int) = 0
	*dest[11].(*time.Time) = time.Unix(0, 0).UTC()
	*dest[12].(*time.Time) = time.Unix(0, 0).UTC()
	return nil
}

func TestScanPet_UnreadableGeneticsStillReturnsRow(t *testing.T) {
	cat, err := genetics.DefaultCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}

	cases := []fakeRow{
		{id: "p1", owner: "u1", genotype: "coat_color:B"},
		{id: "p2", owner: "u1", genotype: "", phenotype: []byte("{not json"), stats: []byte("[]")},
	}
	for _, row := range cases {
		p, err := scanPet(row)
		if err != nil {
			t.Fatalf("%s: scanPet must not fail on unreadable genetics: %v", row.id, err)
		}
		if p.ID != row.id || p.OwnerUserID != row.owner {
			t.Fatalf("%s: identity lost: %+v", row.id, p)
		}
		// el service rechaza el registro al validar
		if err := genetics.Validate(p.Genetics, cat); !errors.Is(err, genetics.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation on the empty code, got %v", row.id, err)
		}
	}

	good := genetics.RandomGenotype(cat, genetics.NewSeededRand(1))
	p, err := scanPet(fakeRow{id: "p3", owner: "u1", genotype: genetics.Encode(good), phenotype: []byte(`{"coat_color":"Brown"}`)})
	if err != nil {
		t.Fatalf("scanPet: %v", err)
	}
	if !p.Genetics.Equal(good) || p.Phenotype[genetics.TraitCoatColor] != "Brown" {
		t.Fatalf("valid row decoded wrong: %+v", p)
	}
}

func TestEnsureSchema_ReportsFailure(t *testing.T) {
	db, err := sql.Open("pgx", "postgres://nobody@127.0.0.1:1/none")
	if err != nil {
		t.Fatalf("sql open: %v", err)
	}
	_ = db.Close()

	if err := EnsureSchema(context.Background(), db); err == nil {
		t.Fatalf("expected schema error on a closed pool")
	}
}

func TestPetsRepo_ListByOwnerKeepsCorruptRows(t *testing.T) {
	repo := openTestDB(t)
	ctx := context.Background()

	owner := "pg-corrupt-" + uuid.NewString()
	now := time.Now().UTC()
	for i, genotype := range []string{"coat_color:B", "@2|coat_color:Bb"} {
		_, err := repo.db.ExecContext(ctx, `
			INSERT INTO pets (id, owner_user_id, name, sex, stage, genotype, created_at, updated_at)
			VALUES ($1, $2, 'Rota', 'unknown', 'adult', $3, $4, $4)
		`, uuid.NewString(), owner, genotype, now.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("raw insert: %v", err)
		}
	}

	items, err := repo.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("list must not fail on corrupt rows: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(items))
	}
	if got, err := repo.GetByID(ctx, items[0].ID); err != nil || got.OwnerUserID != owner {
		t.Fatalf("corrupt row must still expose its owner: %+v %v", got, err)
	}
}
