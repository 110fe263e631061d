package breeding

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"pet-genetics/internal/domain/genetics"
	"pet-genetics/internal/domain/pets"
	"pet-genetics/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, catalog *genetics.Catalog) {
	r.Route("/breedings", func(br chi.Router) {
		br.Post("/", breedHandler(svc))
		br.Get("/preview", previewHandler(svc))
	})

	// Datos de referencia y cuadro suelto (sin mascotas)
	r.Route("/genetics", func(gr chi.Router) {
		gr.Get("/catalog", catalogHandler(catalog))
		gr.Get("/punnett", punnettHandler(catalog))
	})
}

type breedRequest struct {
	Parent1ID string `json:"parent1_id"`
	Parent2ID string `json:"parent2_id"`
	Name      string `json:"name"`
	Seed      *int64 `json:"seed,omitempty"`
}

type breedResponse struct {
	Child       pets.PetResponse         `json:"child"`
	Inheritance []genetics.Inheritance   `json:"inheritance"`
	Squares     []genetics.PunnettResult `json:"squares"`
}

type previewResponse struct {
	Squares  []genetics.PunnettResult `json:"squares"`
	Forecast genetics.LitterForecast  `json:"forecast"`
}

type alleleResponse struct {
	Symbol    string  `json:"symbol"`
	Dominance int     `json:"dominance"`
	Effect    int     `json:"effect"`
	Display   string  `json:"display"`
	Frequency float64 `json:"frequency,omitempty"`
}

type geneResponse struct {
	ID          genetics.GeneID          `json:"id"`
	Trait       genetics.Trait           `json:"trait"`
	Description string                   `json:"description,omitempty"`
	Performance genetics.PerformanceRole `json:"performance,omitempty"`
	Alleles     []alleleResponse         `json:"alleles"`
}

type catalogResponse struct {
	Version   string               `json:"version"`
	TiePolicy genetics.TiePolicy   `json:"tie_policy"`
	Genes     []geneResponse       `json:"genes"`
	Stats     genetics.StatsConfig `json:"stats"`
}

// breedHandler godoc
// @Summary Cruzar dos mascotas
// @Description Cruza dos mascotas propias y registra la cría (generación max+1, stage baby). `seed` hace el cruce reproducible. Devuelve 400 "cannot breed: incompatible genetic data" si algún padre no valida contra el catálogo actual.
// @Tags breeding
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param body body breedRequest true "Padres y nombre de la cría"
// @Success 201 {object} breedResponse
// @Failure 400 {string} string "cannot breed: incompatible genetic data"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /breedings [post]
func breedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req breedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Breed(r.Context(), claims.UserID, BreedInput{
			Parent1ID: req.Parent1ID,
			Parent2ID: req.Parent2ID,
			Name:      req.Name,
			Seed:      req.Seed,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, breedResponse{
			Child:       pets.ToPetResponse(res.Child),
			Inheritance: res.Outcome.Inheritance,
			Squares:     res.Outcome.Squares,
		})
	}
}

// previewHandler godoc
// @Summary Preview de compatibilidad
// @Description Cuadros de Punnett de todos los genes y un pronóstico simulado de la camada. No persiste nada.
// @Tags breeding
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param parent1_id query string true "Padre 1"
// @Param parent2_id query string true "Padre 2"
// @Param samples query int false "Crías simuladas (default 200, max 5000)"
// @Param seed query int false "Semilla del pronóstico"
// @Success 200 {object} previewResponse
// @Router /breedings/preview [get]
func previewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		in := PreviewInput{
			Parent1ID: q.Get("parent1_id"),
			Parent2ID: q.Get("parent2_id"),
		}
		if v := q.Get("samples"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "samples must be a positive integer", http.StatusBadRequest)
				return
			}
			in.Samples = n
		}
		if v := q.Get("seed"); v != "" {
			seed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				http.Error(w, "seed must be an integer", http.StatusBadRequest)
				return
			}
			in.Seed = &seed
		}

		p, err := svc.Preview(r.Context(), claims.UserID, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, previewResponse{Squares: p.Squares, Forecast: p.Forecast})
	}
}

// catalogHandler godoc
// @Summary Catálogo genético
// @Description Genes, alelos (dominance, effect, display) y tablas de stats.
// @Tags genetics
// @Produce json
// @Success 200 {object} catalogResponse
// @Router /genetics/catalog [get]
func catalogHandler(cat *genetics.Catalog) http.HandlerFunc {
	resp := catalogResponse{
		Version:   cat.Version(),
		TiePolicy: cat.TiePolicy(),
		Stats:     cat.Stats(),
	}
	for _, g := range cat.Genes() {
		gr := geneResponse{
			ID:          g.ID,
			Trait:       g.Trait,
			Description: g.Description,
			Performance: g.Performance,
		}
		for _, a := range cat.Alleles(g.ID) {
			gr.Alleles = append(gr.Alleles, alleleResponse{
				Symbol:    a.Symbol,
				Dominance: a.Dominance,
				Effect:    a.Effect,
				Display:   a.Display,
				Frequency: a.Frequency,
			})
		}
		resp.Genes = append(resp.Genes, gr)
	}

	// el catálogo es inmutable: la respuesta se arma una vez
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}

// punnettHandler godoc
// @Summary Cuadro de Punnett suelto
// @Description Calcula el cuadro de un gen a partir de dos genotipos en texto (p.ej. `Bb`).
// @Tags genetics
// @Produce json
// @Param gene query string true "ID del gen"
// @Param parent1 query string true "Genotipo del padre 1"
// @Param parent2 query string true "Genotipo del padre 2"
// @Success 200 {object} genetics.PunnettResult
// @Failure 400 {string} string "invalid genotype"
// @Router /genetics/punnett [get]
func punnettHandler(cat *genetics.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var p1, p2 genetics.Genotype
		if err := p1.UnmarshalText([]byte(q.Get("parent1"))); err != nil {
			http.Error(w, "invalid genotype", http.StatusBadRequest)
			return
		}
		if err := p2.UnmarshalText([]byte(q.Get("parent2"))); err != nil {
			http.Error(w, "invalid genotype", http.StatusBadRequest)
			return
		}

		res, err := genetics.ComputeSquare(genetics.GeneID(q.Get("gene")), p1, p2, cat)
		if err != nil {
			// acá el genotipo viene del cliente: es un 400, no un error interno
			http.Error(w, "invalid genotype", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, genetics.ErrTooManySamples):
		http.Error(w, "too many samples", http.StatusBadRequest)
	default:
		pets.WriteError(w, err)
	}
}

// writeJSON está duplicado intencionalmente (ver pets/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
