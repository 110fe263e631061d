package router

import (
	"database/sql"
	"net/http"

	mem "pet-genetics/internal/adapters/storage/memory"
	pg "pet-genetics/internal/adapters/storage/postgres"
	_ "pet-genetics/internal/docs"
	"pet-genetics/internal/domain/breeding"
	"pet-genetics/internal/domain/genetics"
	"pet-genetics/internal/domain/pets"
	"pet-genetics/internal/middleware"
	"pet-genetics/internal/platform/logger"
	"pet-genetics/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: nil = catálogo embebido.
	Catalog *genetics.Catalog

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	catalog := opts.Catalog
	if catalog == nil {
		c, err := genetics.DefaultCatalog()
		if err != nil {
			// el catálogo embebido se valida en tests: esto es un bug de build
			panic(err)
		}
		catalog = c
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AuthContext(opts.AuthVerifier, log))
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var petRepo pets.Repository
	// DB llega con el schema ya aplicado (cmd/api aborta si falla).
	if opts.DB != nil {
		petRepo = pg.NewPetsRepo(opts.DB)
	} else {
		petRepo = mem.NewPetRepo()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo, catalog, log.With(map[string]any{"module": "pets"}))
	breedingSvc := breeding.NewService(petsSvc, log.With(map[string]any{"module": "breeding"}))

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	breeding.RegisterRoutes(r, breedingSvc, catalog)

	log.Info("router ready", map[string]any{
		"catalog_version": catalog.Version(),
		"store":           storeName(opts.DB),
		"auth":            opts.AuthVerifier != nil,
	})
	return r
}

func storeName(db *sql.DB) string {
	if db != nil {
		return "postgres"
	}
	return "memory"
}
