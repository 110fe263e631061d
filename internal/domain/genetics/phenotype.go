package genetics

// Phenotype: trait -> valor observable ("coat_color" -> "Brown").
type Phenotype map[Trait]string

// ResolvePhenotype es función pura del código y el catálogo.
func ResolvePhenotype(code GeneticCode, cat *Catalog) (Phenotype, error) {
	exprs, err := cat.expressAll(code)
	if err != nil {
		return nil, err
	}
	out := make(Phenotype, len(cat.genes))
	for _, g := range cat.genes {
		out[g.Trait] = exprs[g.ID].Value
	}
	return out, nil
}

func (c *Catalog) expressAll(code GeneticCode) (map[GeneID]Expression, error) {
	if err := Validate(code, c); err != nil {
		return nil, err
	}
	out := make(map[GeneID]Expression, len(c.genes))
	for _, g := range c.genes {
		gt := code.Genotypes[g.ID]
		out[g.ID] = c.express(g, c.normalize(g.ID, gt.First, gt.Second))
	}
	return out, nil
}
