package pets

import (
	"time"

	"pet-genetics/internal/domain/genetics"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

func (s Sex) valid() bool {
	switch s {
	case SexMale, SexFemale, SexUnknown:
		return true
	}
	return false
}

// Pet es un organismo del juego. Genetics no cambia después de nacer;
// Phenotype y Stats son caché y se recalculan al leer.
type Pet struct {
	ID          string
	OwnerUserID string

	Name  string
	Sex   Sex
	Stage genetics.LifeStage

	Genetics  genetics.GeneticCode
	Phenotype genetics.Phenotype
	Stats     genetics.Stats

	// Linaje directo. Vacíos para fundadores (generación 0).
	Parent1ID  string
	Parent2ID  string
	Generation int

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pet) IsFounder() bool {
	return p.Parent1ID == "" && p.Parent2ID == ""
}
