package genetics

import "slices"

type GeneID string

// Trait es la categoría observable que controla un gen (coat_color, eye_color, ...).
type Trait string

const (
	TraitCoatColor  Trait = "coat_color"
	TraitCoatLength Trait = "coat_length"
	TraitPattern    Trait = "pattern"
	TraitEyeColor   Trait = "eye_color"
	TraitFurType    Trait = "fur_type"
)

// PerformanceRole marca los genes que alimentan speed/endurance.
// @Enum speed, endurance, both
type PerformanceRole string

const (
	PerformanceNone      PerformanceRole = ""
	PerformanceSpeed     PerformanceRole = "speed"
	PerformanceEndurance PerformanceRole = "endurance"
	PerformanceBoth      PerformanceRole = "both"
)

func (r PerformanceRole) valid() bool {
	switch r {
	case PerformanceNone, PerformanceSpeed, PerformanceEndurance, PerformanceBoth:
		return true
	}
	return false
}

// TiePolicy decide qué se expresa cuando dos alelos distintos tienen el mismo dominance.
// @Enum codominant, first_symbol
type TiePolicy string

const (
	TieCoDominant  TiePolicy = "codominant"
	TieFirstSymbol TiePolicy = "first_symbol"
)

type Gene struct {
	ID          GeneID
	Trait       Trait
	Description string
	Performance PerformanceRole

	// blends: nombre de display para pares co-dominantes, keyed por genotipo canónico ("PS").
	blends map[string]string
}

// Blend devuelve el nombre configurado para un par co-dominante, si existe.
func (g Gene) Blend(genotype string) (string, bool) {
	v, ok := g.blends[genotype]
	return v, ok
}

type Allele struct {
	Gene      GeneID
	Symbol    string
	Dominance int
	Effect    int
	Display   string
	Frequency float64 // 0 = no declarada
}

func (a Allele) Key() AlleleKey {
	return AlleleKey{Gene: a.Gene, Symbol: a.Symbol}
}

// AlleleKey identifica un alelo: el símbolo es único dentro de su gen.
type AlleleKey struct {
	Gene   GeneID
	Symbol string
}

func (k AlleleKey) String() string {
	return string(k.Gene) + "/" + k.Symbol
}

// Catalog es inmutable después de LoadCatalog: se comparte por puntero sin locks.
type Catalog struct {
	version string
	ties    TiePolicy

	genes     []Gene
	geneIndex map[GeneID]int
	alleles   map[AlleleKey]Allele
	byGene    map[GeneID][]string

	stats StatsConfig
}

func (c *Catalog) Version() string      { return c.version }
func (c *Catalog) TiePolicy() TiePolicy { return c.ties }

// Genes devuelve los genes en orden canónico (orden de definición).
func (c *Catalog) Genes() []Gene {
	return slices.Clone(c.genes)
}

func (c *Catalog) Gene(id GeneID) (Gene, bool) {
	i, ok := c.geneIndex[id]
	if !ok {
		return Gene{}, false
	}
	return c.genes[i], true
}

func (c *Catalog) Allele(gene GeneID, symbol string) (Allele, bool) {
	a, ok := c.alleles[AlleleKey{Gene: gene, Symbol: symbol}]
	return a, ok
}

// Alleles devuelve los alelos válidos de un gen en orden de definición.
func (c *Catalog) Alleles(gene GeneID) []Allele {
	symbols := c.byGene[gene]
	out := make([]Allele, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, c.alleles[AlleleKey{Gene: gene, Symbol: s}])
	}
	return out
}

func (c *Catalog) Stats() StatsConfig {
	return c.stats.clone()
}

func (c *Catalog) hasAllele(gene GeneID, symbol string) bool {
	_, ok := c.alleles[AlleleKey{Gene: gene, Symbol: symbol}]
	return ok
}
