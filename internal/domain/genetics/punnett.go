package genetics

import "fmt"

// Expression es lo que se observa de un genotipo: un alelo dominante,
// o dos alelos cuando hay empate de dominance y la política es codominant.
// Tie marca el empate con cualquier política.
type Expression struct {
	Alleles    []string `json:"alleles"`
	Value      string   `json:"value"`
	CoDominant bool     `json:"co_dominant"`
	Tie        bool     `json:"tie"`
}

type PunnettCell struct {
	Parent1Allele string     `json:"parent1_allele"`
	Parent2Allele string     `json:"parent2_allele"`
	Genotype      Genotype   `json:"-"`
	Key           string     `json:"genotype"`
	Expressed     Expression `json:"expressed"`
}

type PunnettOutcome struct {
	Genotype    string     `json:"genotype"`
	Count       int        `json:"count"` // sobre 4 celdas
	Probability float64    `json:"probability"`
	Expressed   Expression `json:"expressed"`
}

// PunnettResult es informativo: se muestra, no se persiste.
type PunnettResult struct {
	Gene    GeneID `json:"gene"`
	Trait   Trait  `json:"trait"`
	Parent1 string `json:"parent1"`
	Parent2 string `json:"parent2"`

	// Grid[i][j]: alelo i del padre 1 con alelo j del padre 2.
	Grid [2][2]PunnettCell `json:"grid"`

	Outcomes      []PunnettOutcome   `json:"outcomes"` // orden de primera aparición en la grilla
	Probabilities map[string]float64 `json:"probabilities"`
	PhenotypeOdds map[string]float64 `json:"phenotype_odds"`
}

// Cell devuelve la celda i-ésima en orden de fila (0..3).
func (r PunnettResult) Cell(i int) PunnettCell {
	return r.Grid[i/2][i%2]
}

// ComputeSquare arma el cuadro 2x2 de un gen, agrupa pares no ordenados y resuelve la expresión.
func ComputeSquare(gene GeneID, p1, p2 Genotype, cat *Catalog) (PunnettResult, error) {
	g, ok := cat.Gene(gene)
	if !ok {
		return PunnettResult{}, fmt.Errorf("%w: unknown gene %q", ErrInvalidGenotype, gene)
	}
	for _, p := range []Genotype{p1, p2} {
		if !cat.hasAllele(gene, p.First) || !cat.hasAllele(gene, p.Second) {
			return PunnettResult{}, fmt.Errorf("%w: %q is not a pair of %q alleles", ErrInvalidGenotype, p.String(), gene)
		}
	}

	res := PunnettResult{
		Gene:          g.ID,
		Trait:         g.Trait,
		Parent1:       cat.normalize(gene, p1.First, p1.Second).String(),
		Parent2:       cat.normalize(gene, p2.First, p2.Second).String(),
		Probabilities: map[string]float64{},
		PhenotypeOdds: map[string]float64{},
	}

	rows := [2]string{p1.First, p1.Second}
	cols := [2]string{p2.First, p2.Second}
	index := map[string]int{}

	for i, a := range rows {
		for j, b := range cols {
			gt := cat.normalize(gene, a, b)
			key := gt.String()
			expr := cat.express(g, gt)
			res.Grid[i][j] = PunnettCell{
				Parent1Allele: a,
				Parent2Allele: b,
				Genotype:      gt,
				Key:           key,
				Expressed:     expr,
			}

			if k, seen := index[key]; seen {
				res.Outcomes[k].Count++
				continue
			}
			index[key] = len(res.Outcomes)
			res.Outcomes = append(res.Outcomes, PunnettOutcome{Genotype: key, Count: 1, Expressed: expr})
		}
	}

	for i := range res.Outcomes {
		o := &res.Outcomes[i]
		o.Probability = float64(o.Count) / 4
		res.Probabilities[o.Genotype] = o.Probability
		res.PhenotypeOdds[o.Expressed.Value] += o.Probability
	}
	return res, nil
}

// express resuelve el alelo expresado de un par canónico.
func (c *Catalog) express(g Gene, gt Genotype) Expression {
	a := c.alleles[AlleleKey{Gene: g.ID, Symbol: gt.First}]
	b := c.alleles[AlleleKey{Gene: g.ID, Symbol: gt.Second}]

	// En orden canónico First nunca tiene menos dominance que Second.
	if a.Symbol == b.Symbol || a.Dominance > b.Dominance {
		return Expression{Alleles: []string{a.Symbol}, Value: a.Display}
	}

	// Empate entre alelos distintos: First tiene el símbolo menor.
	if c.ties == TieFirstSymbol {
		return Expression{Alleles: []string{a.Symbol}, Value: a.Display, Tie: true}
	}
	value, ok := g.Blend(gt.String())
	if !ok {
		value = a.Display + "-" + b.Display
	}
	return Expression{Alleles: []string{a.Symbol, b.Symbol}, Value: value, CoDominant: true, Tie: true}
}
