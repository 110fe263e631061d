package genetics

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Rand es la fuente de azar inyectada. *rand.Rand (math/rand/v2) la satisface.
type Rand interface {
	IntN(n int) int
}

// NewSeededRand devuelve un PCG determinista para la semilla dada.
// No es seguro para uso concurrente.
func NewSeededRand(seed int64) *rand.Rand {
	// #nosec G404 -- simulación, no criptografía
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d:%s", seed, salt)
	return h.Sum64()
}
