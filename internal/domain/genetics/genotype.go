package genetics

import (
	"fmt"
	"unicode/utf8"
)

// Genotype es un par no ordenado de símbolos de alelo de un mismo gen.
// Se guarda en orden canónico: mayor dominance primero, luego símbolo ascendente.
type Genotype struct {
	First  string
	Second string
}

func (g Genotype) String() string {
	return g.First + g.Second
}

func (g Genotype) Homozygous() bool {
	return g.First == g.Second
}

// MarshalText permite serializar el par como "Bb" (p.ej. en JSON).
func (g Genotype) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Genotype) UnmarshalText(b []byte) error {
	s := string(b)
	if utf8.RuneCountInString(s) != 2 {
		return fmt.Errorf("%w: want two allele symbols, got %q", ErrInvalidGenotype, s)
	}
	r, size := utf8.DecodeRuneInString(s)
	g.First, g.Second = string(r), s[size:]
	return nil
}

// Equal compara sin importar el orden.
func (g Genotype) Equal(o Genotype) bool {
	return (g.First == o.First && g.Second == o.Second) ||
		(g.First == o.Second && g.Second == o.First)
}

// GeneticCode es el genotipo completo de un organismo. No se muta después de crearse.
type GeneticCode struct {
	CatalogVersion string              `json:"catalog_version,omitempty"`
	Genotypes      map[GeneID]Genotype `json:"genotypes"`
}

func (c GeneticCode) Genotype(gene GeneID) (Genotype, bool) {
	g, ok := c.Genotypes[gene]
	return g, ok
}

// Equal compara versión y cada par (sin orden dentro del par).
func (c GeneticCode) Equal(o GeneticCode) bool {
	if c.CatalogVersion != o.CatalogVersion || len(c.Genotypes) != len(o.Genotypes) {
		return false
	}
	for id, g := range c.Genotypes {
		og, ok := o.Genotypes[id]
		if !ok || !g.Equal(og) {
			return false
		}
	}
	return true
}

// NewGenotype valida que ambos símbolos pertenezcan al gen y devuelve el par canónico.
func (c *Catalog) NewGenotype(gene GeneID, a, b string) (Genotype, error) {
	if _, ok := c.Gene(gene); !ok {
		return Genotype{}, fmt.Errorf("%w: unknown gene %q", ErrInvalidGenotype, gene)
	}
	if !c.hasAllele(gene, a) || !c.hasAllele(gene, b) {
		return Genotype{}, fmt.Errorf("%w: %q is not a pair of %q alleles", ErrInvalidGenotype, a+b, gene)
	}
	return c.normalize(gene, a, b), nil
}

// normalize asume que ambos alelos existen.
func (c *Catalog) normalize(gene GeneID, a, b string) Genotype {
	da := c.alleles[AlleleKey{Gene: gene, Symbol: a}].Dominance
	db := c.alleles[AlleleKey{Gene: gene, Symbol: b}].Dominance
	if db > da || (db == da && b < a) {
		a, b = b, a
	}
	return Genotype{First: a, Second: b}
}

// RandomGenotype arma un fundador: por gen, dos sorteos uniformes con reemplazo.
// Nunca se usa para crías (esas pasan por Breed).
func RandomGenotype(cat *Catalog, rng Rand) GeneticCode {
	code := GeneticCode{
		CatalogVersion: cat.version,
		Genotypes:      make(map[GeneID]Genotype, len(cat.genes)),
	}
	for _, g := range cat.genes {
		symbols := cat.byGene[g.ID]
		a := symbols[rng.IntN(len(symbols))]
		b := symbols[rng.IntN(len(symbols))]
		code.Genotypes[g.ID] = cat.normalize(g.ID, a, b)
	}
	return code
}

// Validate se usa cada vez que un GeneticCode viene de storage.
func Validate(code GeneticCode, cat *Catalog) error {
	if code.CatalogVersion != "" && code.CatalogVersion != cat.version {
		return fmt.Errorf("%w: catalog version %q, want %q", ErrValidation, code.CatalogVersion, cat.version)
	}
	for id, g := range code.Genotypes {
		if _, ok := cat.Gene(id); !ok {
			return fmt.Errorf("%w: unknown gene %q", ErrValidation, id)
		}
		if !cat.hasAllele(id, g.First) || !cat.hasAllele(id, g.Second) {
			return fmt.Errorf("%w: gene %q: %q is not a pair of its alleles", ErrValidation, id, g.String())
		}
	}
	for _, g := range cat.genes {
		if _, ok := code.Genotypes[g.ID]; !ok {
			return fmt.Errorf("%w: missing gene %q", ErrValidation, g.ID)
		}
	}
	return nil
}
