package genetics

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Encode serializa un GeneticCode para storage:
//
//	@<version>|coat_color:Bb;eye_color:EG
//
// Los genes van ordenados por id para que la salida sea estable. Sin versión no hay prefijo.
func Encode(code GeneticCode) string {
	ids := make([]string, 0, len(code.Genotypes))
	for id := range code.Genotypes {
		ids = append(ids, string(id))
	}
	slices.Sort(ids)

	var b strings.Builder
	if code.CatalogVersion != "" {
		b.WriteString("@")
		b.WriteString(code.CatalogVersion)
		b.WriteString("|")
	}
	for i, id := range ids {
		if i > 0 {
			b.WriteString(";")
		}
		g := code.Genotypes[GeneID(id)]
		b.WriteString(id)
		b.WriteString(":")
		b.WriteString(g.First)
		b.WriteString(g.Second)
	}
	return b.String()
}

// Decode es la inversa de Encode. Sólo valida formato; la consistencia con el
// catálogo la da Validate.
func Decode(s string) (GeneticCode, error) {
	code := GeneticCode{Genotypes: map[GeneID]Genotype{}}

	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "@") {
		version, rest, ok := strings.Cut(s[1:], "|")
		if !ok || version == "" {
			return GeneticCode{}, fmt.Errorf("%w: decode: malformed version prefix", ErrValidation)
		}
		code.CatalogVersion = version
		s = rest
	}
	if s == "" {
		return code, nil
	}

	for _, part := range strings.Split(s, ";") {
		id, pair, ok := strings.Cut(part, ":")
		if !ok || id == "" {
			return GeneticCode{}, fmt.Errorf("%w: decode: malformed entry %q", ErrValidation, part)
		}
		if utf8.RuneCountInString(pair) != 2 {
			return GeneticCode{}, fmt.Errorf("%w: decode: gene %q: want two allele symbols, got %q", ErrValidation, id, pair)
		}
		if _, dup := code.Genotypes[GeneID(id)]; dup {
			return GeneticCode{}, fmt.Errorf("%w: decode: duplicate gene %q", ErrValidation, id)
		}
		first, size := utf8.DecodeRuneInString(pair)
		code.Genotypes[GeneID(id)] = Genotype{First: string(first), Second: pair[size:]}
	}
	return code, nil
}
