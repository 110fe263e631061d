package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-genetics/internal/domain/genetics"
	"pet-genetics/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
	})
}

// createPetRequest crea un fundador (genotipo aleatorio).
type createPetRequest struct {
	Name  string `json:"name"`
	Sex   string `json:"sex" enums:"male,female,unknown"`
	Stage string `json:"stage" enums:"baby,juvenile,adult,elder"` // default adult
	Seed  *int64 `json:"seed,omitempty"`
}

type updatePetRequest struct {
	Name  *string `json:"name"`
	Stage *string `json:"stage"`
}

// PetResponse es la representación pública de una mascota.
type PetResponse struct {
	ID          string                                `json:"id"`
	OwnerUserID string                                `json:"owner_user_id"`
	Name        string                                `json:"name"`
	Sex         Sex                                   `json:"sex"`
	Stage       genetics.LifeStage                    `json:"stage"`
	Genotype    string                                `json:"genotype"`
	Genotypes   map[genetics.GeneID]genetics.Genotype `json:"genotypes"`
	Phenotype   genetics.Phenotype                    `json:"phenotype"`
	Stats       genetics.Stats                        `json:"stats"`
	Parent1ID   string                                `json:"parent1_id,omitempty"`
	Parent2ID   string                                `json:"parent2_id,omitempty"`
	Generation  int                                   `json:"generation"`
	CreatedAt   time.Time                             `json:"created_at"`
	UpdatedAt   time.Time                             `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Crear mascota fundadora
// @Description Crea una mascota de generación 0 con genotipo aleatorio. `seed` hace el sorteo reproducible.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param body body createPetRequest true "Datos de la mascota"
// @Success 201 {object} PetResponse
// @Failure 400 {string} string "invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.CreateFounder(r.Context(), claims.UserID, CreateInput{
			Name:  req.Name,
			Sex:   req.Sex,
			Stage: req.Stage,
			Seed:  req.Seed,
		})
		if err != nil {
			WriteError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, ToPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mis mascotas
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} PetResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]PetResponse, 0, len(items))
		for _, p := range items {
			out = append(out, ToPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Description Devuelve genotipo, fenotipo y stats recalculados. 422 si la genética guardada es inconsistente con el catálogo.
// @Tags pets
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} PetResponse
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Failure 422 {string} string "invalid genetic data"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		ownerID, err := svc.OwnerOf(r.Context(), petID)
		if err != nil {
			WriteError(w, err)
			return
		}
		if ownerID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			WriteError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Cambia nombre y/o stage. El stage lo maneja el subsistema de envejecimiento y afecta market_value. La genética no se puede editar.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param body body updatePetRequest true "Campos a cambiar"
// @Success 200 {object} PetResponse
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		ownerID, err := svc.OwnerOf(r.Context(), petID)
		if err != nil {
			WriteError(w, err)
			return
		}
		if ownerID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		// genotypes/phenotype/stats no son editables: campos desconocidos = 400
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updatePetRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), petID, UpdateProfileInput{
			Name:  req.Name,
			Stage: req.Stage,
		})
		if err != nil {
			WriteError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ToPetResponse(updated))
	}
}

func ToPetResponse(p Pet) PetResponse {
	return PetResponse{
		ID:          p.ID,
		OwnerUserID: p.OwnerUserID,
		Name:        p.Name,
		Sex:         p.Sex,
		Stage:       p.Stage,
		Genotype:    genetics.Encode(p.Genetics),
		Genotypes:   p.Genetics.Genotypes,
		Phenotype:   p.Phenotype,
		Stats:       p.Stats,
		Parent1ID:   p.Parent1ID,
		Parent2ID:   p.Parent2ID,
		Generation:  p.Generation,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// WriteError traduce errores de dominio a HTTP sin filtrar detalles internos.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, genetics.ErrIncompatibleParents):
		http.Error(w, genetics.ErrIncompatibleParents.Error(), http.StatusBadRequest)
	case errors.Is(err, genetics.ErrValidation):
		http.Error(w, "invalid genetic data", http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (pets/breeding)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
