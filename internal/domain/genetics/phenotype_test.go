package genetics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePhenotype_Dominance(t *testing.T) {
	cat := mustCatalog(t, coatDefinition())

	cases := map[string]string{"BB": "Brown", "Bb": "Brown", "bB": "Brown", "bb": "Black"}
	for pair, want := range cases {
		ph, err := ResolvePhenotype(code("test", map[GeneID]string{"coat_color": pair}), cat)
		require.NoError(t, err)
		assert.Equal(t, Phenotype{TraitCoatColor: want}, ph, "pair %s", pair)
	}
}

func TestResolvePhenotype_IsPure(t *testing.T) {
	cat := mustDefault(t)
	c := RandomGenotype(cat, NewSeededRand(99))
	before := Encode(c)

	a, err := ResolvePhenotype(c, cat)
	require.NoError(t, err)
	b, err := ResolvePhenotype(c, cat)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, before, Encode(c))
	assert.Len(t, a, len(cat.Genes()))
}

func TestResolvePhenotype_CoDominantBlend(t *testing.T) {
	cat := mustDefault(t)
	c := code("2", map[GeneID]string{
		"coat_color": "BB", "coat_length": "Ll", "pattern": "SP",
		"eye_color": "GU", "fur_type": "ff", "build": "aa", "stamina": "Nn",
	})

	ph, err := ResolvePhenotype(c, cat)
	require.NoError(t, err)
	assert.Equal(t, Phenotype{
		"coat_color": "Brown", "coat_length": "Short", "pattern": "Brindle",
		"eye_color": "Green", "fur_type": "Curly", "build": "Lean", "stamina": "Normal",
	}, ph)
}

func TestResolvePhenotype_RejectsInvalidCode(t *testing.T) {
	cat := mustCatalog(t, coatDefinition())

	_, err := ResolvePhenotype(code("test", map[GeneID]string{"coat_color": "Bz"}), cat)
	require.ErrorIs(t, err, ErrValidation)
}
