package genetics

import "errors"

var (
	// ErrCatalog: datos de referencia mal formados. Fatal al arrancar.
	ErrCatalog = errors.New("catalog error")
	// ErrValidation: un GeneticCode no es consistente con el catálogo.
	ErrValidation = errors.New("invalid genetic code")
	// ErrInvalidGenotype: par de alelos mal formado para un gen.
	ErrInvalidGenotype = errors.New("invalid genotype")
	// ErrIncompatibleParents: algún padre no valida contra el catálogo actual.
	ErrIncompatibleParents = errors.New("cannot breed: incompatible genetic data")
)
