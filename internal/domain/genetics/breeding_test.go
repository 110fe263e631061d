package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func founders(t *testing.T, cat *Catalog) (GeneticCode, GeneticCode) {
	t.Helper()
	p1 := RandomGenotype(cat, NewSeededRand(1))
	p2 := RandomGenotype(cat, NewSeededRand(2))
	require.NoError(t, Validate(p1, cat))
	require.NoError(t, Validate(p2, cat))
	return p1, p2
}

func TestBreed_SameSeedSameOutcome(t *testing.T) {
	cat := mustDefault(t)
	p1, p2 := founders(t, cat)

	a, err := Breed(p1, p2, cat, NewSeededRand(42))
	require.NoError(t, err)
	b, err := Breed(p1, p2, cat, NewSeededRand(42))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, Encode(a.Child), Encode(b.Child))
}

func TestBreed_ChildAlwaysValidates(t *testing.T) {
	cat := mustDefault(t)
	p1, p2 := founders(t, cat)
	rng := NewSeededRand(7)

	for range 200 {
		out, err := Breed(p1, p2, cat, rng)
		require.NoError(t, err)
		require.NoError(t, Validate(out.Child, cat))
		assert.Equal(t, cat.Version(), out.Child.CatalogVersion)
		require.Len(t, out.Squares, len(cat.Genes()))
		require.Len(t, out.Inheritance, len(cat.Genes()))

		for i, g := range cat.Genes() {
			sq := out.Squares[i]
			assert.Equal(t, g.ID, sq.Gene)

			child := out.Child.Genotypes[g.ID]
			assert.Greater(t, sq.Probabilities[child.String()], 0.0, "gene %s drew %s", g.ID, child)

			inh := out.Inheritance[i]
			from1, from2 := p1.Genotypes[g.ID], p2.Genotypes[g.ID]
			assert.Contains(t, []string{from1.First, from1.Second}, inh.FromParent1)
			assert.Contains(t, []string{from2.First, from2.Second}, inh.FromParent2)
			assert.True(t, child.Equal(Genotype{First: inh.FromParent1, Second: inh.FromParent2}))
		}
	}
}

func TestBreed_DrawComesFromGridCell(t *testing.T) {
	cat := mustCatalog(t, coatDefinition())
	p1 := code("test", map[GeneID]string{"coat_color": "Bb"})
	p2 := code("test", map[GeneID]string{"coat_color": "bB"})

	// celda 3 = segundo alelo del padre 1 x segundo alelo del padre 2
	out, err := Breed(p1, p2, cat, &fixedRand{vals: []int{3}})
	require.NoError(t, err)

	assert.Equal(t, Genotype{First: "B", Second: "b"}, out.Child.Genotypes["coat_color"])
	assert.Equal(t, Inheritance{Gene: "coat_color", FromParent1: "b", FromParent2: "B", Genotype: "Bb"}, out.Inheritance[0])
	assert.Equal(t, "Brown", out.Phenotype[TraitCoatColor])
}

func TestBreed_DistributionMatchesSquare(t *testing.T) {
	cat := mustCatalog(t, coatDefinition())
	p := code("test", map[GeneID]string{"coat_color": "Bb"})
	rng := NewSeededRand(2024)

	const n = 4000
	counts := map[string]int{}
	for range n {
		out, err := Breed(p, p, cat, rng)
		require.NoError(t, err)
		counts[out.Child.Genotypes["coat_color"].String()]++
	}

	assert.InDelta(t, 0.25, float64(counts["BB"])/n, 0.03)
	assert.InDelta(t, 0.50, float64(counts["Bb"])/n, 0.03)
	assert.InDelta(t, 0.25, float64(counts["bb"])/n, 0.03)
}

func TestBreed_DoesNotMutateParents(t *testing.T) {
	cat := mustDefault(t)
	p1, p2 := founders(t, cat)
	before1, before2 := Encode(p1), Encode(p2)

	_, err := Breed(p1, p2, cat, NewSeededRand(3))
	require.NoError(t, err)

	assert.Equal(t, before1, Encode(p1))
	assert.Equal(t, before2, Encode(p2))
}

func TestBreed_IncompatibleParents(t *testing.T) {
	cat := mustCatalog(t, coatDefinition())
	ok := code("test", map[GeneID]string{"coat_color": "Bb"})

	cases := map[string]GeneticCode{
		"other catalog version": code("old", map[GeneID]string{"coat_color": "Bb"}),
		"unknown gene":          code("test", map[GeneID]string{"coat_color": "Bb", "wings": "Ww"}),
		"missing gene":          code("test", map[GeneID]string{}),
		"foreign allele":        code("test", map[GeneID]string{"coat_color": "BX"}),
	}
	for name, bad := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Breed(ok, bad, cat, NewSeededRand(1))
			require.ErrorIs(t, err, ErrIncompatibleParents)
			require.ErrorIs(t, err, ErrValidation)

			_, err = Breed(bad, ok, cat, NewSeededRand(1))
			require.ErrorIs(t, err, ErrIncompatibleParents)
		})
	}
}

func TestBreed_SelfBreedingAllowed(t *testing.T) {
	cat := mustDefault(t)
	p1, _ := founders(t, cat)

	out, err := Breed(p1, p1, cat, NewSeededRand(5))
	require.NoError(t, err)
	require.NoError(t, Validate(out.Child, cat))
}

func TestCrossSquares(t *testing.T) {
	cat := mustDefault(t)
	p1, p2 := founders(t, cat)

	squares, err := CrossSquares(p1, p2, cat)
	require.NoError(t, err)
	require.Len(t, squares, len(cat.Genes()))
	assert.Equal(t, GeneID("coat_color"), squares[0].Gene)

	_, err = CrossSquares(p1, GeneticCode{CatalogVersion: "1"}, cat)
	require.ErrorIs(t, err, ErrIncompatibleParents)
}

func TestRandomGenotype(t *testing.T) {
	cat := mustDefault(t)

	a := RandomGenotype(cat, NewSeededRand(11))
	b := RandomGenotype(cat, NewSeededRand(11))
	require.NoError(t, Validate(a, cat))
	assert.Equal(t, a, b)

	// siempre el primer alelo: homocigoto en todos los genes
	homo := RandomGenotype(cat, &fixedRand{vals: []int{0}})
	for _, g := range cat.Genes() {
		assert.True(t, homo.Genotypes[g.ID].Homozygous(), "gene %s", g.ID)
	}
}
