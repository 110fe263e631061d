package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-genetics/internal/domain/genetics"
	"pet-genetics/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_user_id,
	name, sex, stage,
	genotype, phenotype, stats,
	parent1_id, parent2_id, generation,
	created_at, updated_at
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	phenotype, stats, err := marshalCache(p)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		p.Sex,
		p.Stage,
		genetics.Encode(p.Genetics),
		phenotype,
		stats,
		toNullString(p.Parent1ID),
		toNullString(p.Parent2ID),
		p.Generation,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// Update no toca genotype ni linaje: son inmutables después de nacer.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	phenotype, stats, err := marshalCache(p)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			stage = $3,
			phenotype = $4,
			stats = $5,
			updated_at = $6
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Stage,
		phenotype,
		stats,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

// scanPet no falla por genética ilegible: la fila vuelve con un GeneticCode vacío y
// el service la rechaza al validar (con su warning de integridad). Así un registro
// corrupto no tumba ListByOwner ni OwnerOf. Los cachés ilegibles se descartan:
// fenotipo y stats se recalculan al leer.
func scanPet(s scanner) (pets.Pet, error) {
	var (
		p                pets.Pet
		genotype         string
		phenotype, stats []byte
		parent1, parent2 sql.NullString
	)
	if err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&p.Sex,
		&p.Stage,
		&genotype,
		&phenotype,
		&stats,
		&parent1,
		&parent2,
		&p.Generation,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	if code, err := genetics.Decode(genotype); err == nil {
		p.Genetics = code
	}
	p.Parent1ID = parent1.String
	p.Parent2ID = parent2.String

	if len(phenotype) > 0 {
		if err := json.Unmarshal(phenotype, &p.Phenotype); err != nil {
			p.Phenotype = nil
		}
	}
	if len(stats) > 0 {
		if err := json.Unmarshal(stats, &p.Stats); err != nil {
			p.Stats = genetics.Stats{}
		}
	}
	return p, nil
}

func marshalCache(p pets.Pet) ([]byte, []byte, error) {
	ph := p.Phenotype
	if ph == nil {
		ph = genetics.Phenotype{}
	}
	phenotype, err := json.Marshal(ph)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal phenotype: %w", err)
	}
	stats, err := json.Marshal(p.Stats)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal stats: %w", err)
	}
	return phenotype, stats, nil
}

// Fundadores no tienen padres: NULL en vez de ''
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
