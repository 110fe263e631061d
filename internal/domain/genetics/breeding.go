package genetics

import "fmt"

// Inheritance registra qué alelo aportó cada padre para un gen.
type Inheritance struct {
	Gene        GeneID `json:"gene"`
	FromParent1 string `json:"from_parent1"`
	FromParent2 string `json:"from_parent2"`
	Genotype    string `json:"genotype"`
}

// BreedingOutcome es efímero: la capa externa decide si lo persiste.
type BreedingOutcome struct {
	Child       GeneticCode
	Phenotype   Phenotype
	Stats       Stats
	Squares     []PunnettResult
	Inheritance []Inheritance
}

// Breed cruza dos padres gen por gen, en el orden canónico del catálogo.
// El alelo de cada padre sale de sortear una celda del mismo cuadro de Punnett que se
// reporta: fila = alelo del padre 1, columna = alelo del padre 2, así que el sorteo
// uniforme sobre 4 celdas equivale a un sorteo uniforme por padre.
// Los padres no se modifican.
func Breed(p1, p2 GeneticCode, cat *Catalog, rng Rand) (BreedingOutcome, error) {
	if err := Validate(p1, cat); err != nil {
		return BreedingOutcome{}, fmt.Errorf("%w: parent1: %w", ErrIncompatibleParents, err)
	}
	if err := Validate(p2, cat); err != nil {
		return BreedingOutcome{}, fmt.Errorf("%w: parent2: %w", ErrIncompatibleParents, err)
	}

	out := BreedingOutcome{
		Child: GeneticCode{
			CatalogVersion: cat.version,
			Genotypes:      make(map[GeneID]Genotype, len(cat.genes)),
		},
		Squares:     make([]PunnettResult, 0, len(cat.genes)),
		Inheritance: make([]Inheritance, 0, len(cat.genes)),
	}

	for _, g := range cat.genes {
		sq, err := ComputeSquare(g.ID, p1.Genotypes[g.ID], p2.Genotypes[g.ID], cat)
		if err != nil {
			return BreedingOutcome{}, err
		}
		cell := sq.Cell(rng.IntN(4))

		out.Child.Genotypes[g.ID] = cell.Genotype
		out.Squares = append(out.Squares, sq)
		out.Inheritance = append(out.Inheritance, Inheritance{
			Gene:        g.ID,
			FromParent1: cell.Parent1Allele,
			FromParent2: cell.Parent2Allele,
			Genotype:    cell.Key,
		})
	}

	ph, err := ResolvePhenotype(out.Child, cat)
	if err != nil {
		return BreedingOutcome{}, err
	}
	st, err := DeriveStats(out.Child, ph, cat, StageBaby)
	if err != nil {
		return BreedingOutcome{}, err
	}
	out.Phenotype = ph
	out.Stats = st
	return out, nil
}

// CrossSquares calcula el cuadro de todos los genes sin sortear (preview de compatibilidad).
func CrossSquares(p1, p2 GeneticCode, cat *Catalog) ([]PunnettResult, error) {
	if err := Validate(p1, cat); err != nil {
		return nil, fmt.Errorf("%w: parent1: %w", ErrIncompatibleParents, err)
	}
	if err := Validate(p2, cat); err != nil {
		return nil, fmt.Errorf("%w: parent2: %w", ErrIncompatibleParents, err)
	}
	out := make([]PunnettResult, 0, len(cat.genes))
	for _, g := range cat.genes {
		sq, err := ComputeSquare(g.ID, p1.Genotypes[g.ID], p2.Genotypes[g.ID], cat)
		if err != nil {
			return nil, err
		}
		out = append(out, sq)
	}
	return out, nil
}
