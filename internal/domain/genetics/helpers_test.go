package genetics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// coatDefinition: un solo gen coat_color con B (Brown, dominante) y b (Black).
func coatDefinition() Definition {
	return Definition{
		Version: "test",
		Genes: []GeneDefinition{
			{ID: "coat_color", Trait: TraitCoatColor},
		},
		Alleles: []AlleleDefinition{
			{Gene: "coat_color", Symbol: "B", Dominance: 2, Effect: 0, Display: "Brown"},
			{Gene: "coat_color", Symbol: "b", Dominance: 1, Effect: 5, Display: "Black"},
		},
	}
}

func mustCatalog(t *testing.T, def Definition) *Catalog {
	t.Helper()
	cat, err := LoadCatalog(def)
	require.NoError(t, err)
	return cat
}

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	cat, err := DefaultCatalog()
	require.NoError(t, err)
	return cat
}

func gt(s string) Genotype {
	r := []rune(s)
	return Genotype{First: string(r[0]), Second: string(r[1])}
}

// code arma un GeneticCode desde pares en texto ("Bb").
func code(version string, pairs map[GeneID]string) GeneticCode {
	c := GeneticCode{CatalogVersion: version, Genotypes: map[GeneID]Genotype{}}
	for id, p := range pairs {
		c.Genotypes[id] = gt(p)
	}
	return c
}

// fixedRand devuelve los valores en secuencia (módulo n), cíclicamente.
type fixedRand struct {
	vals []int
	i    int
}

func (r *fixedRand) IntN(n int) int {
	v := r.vals[r.i%len(r.vals)] % n
	r.i++
	return v
}
