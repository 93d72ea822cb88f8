package router

import (
	"errors"
	"net/http"
	"strings"

	_ "pet-adoption/docs"

	mem "pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/admin"
	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/metrics"
	"pet-adoption/internal/platform/uploads"
	"pet-adoption/internal/session"
	"pet-adoption/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Gate es obligatorio: sin él no hay forma de proteger /admin.
	Gate *session.Gate

	// Opcionales: si no vienen, repos in-memory compartiendo una DB.
	PetRepo      pets.Repository
	AdoptionRepo adoptions.Repository

	// Uploads se sirve público en /uploads; IDProofs solo vía /admin/id_proofs.
	Uploads      *uploads.Store
	IDProofs     *uploads.Store
	Logger       logger.Logger
	Metrics      *metrics.Metrics
	Renderer     *web.Renderer
	MaxBodyBytes int64
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Gate == nil {
		return nil, errors.New("router: session gate required")
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	renderer := opts.Renderer
	if renderer == nil {
		rd, err := web.NewRenderer()
		if err != nil {
			return nil, err
		}
		renderer = rd
	}
	files := opts.Uploads
	if files == nil {
		files = uploads.NewStore("static/uploads")
	}
	proofs := opts.IDProofs
	if proofs == nil {
		proofs = uploads.NewStore("private/id_proofs")
	}
	maxBody := opts.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = config.DefaultMaxBodyBytes
	}

	petRepo, adoptionRepo := opts.PetRepo, opts.AdoptionRepo
	if petRepo == nil || adoptionRepo == nil {
		// las dos tablas tienen que vivir en la misma DB para la cascada y el approve atómico
		db := mem.NewDB()
		petRepo = mem.NewPetRepo(db)
		adoptionRepo = mem.NewAdoptionRepo(db)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(m.Middleware)
	r.Use(middleware.MaxBodySize(maxBody))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", uploadsHandler(files)))

	deps := web.Deps{
		Render:       renderer,
		Log:          log,
		Metrics:      m,
		RequireAdmin: session.RequireAdmin(opts.Gate),
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo, files)
	adoptionsSvc := adoptions.NewService(adoptionRepo, petsSvc, proofs)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc, deps)
	adoptions.RegisterRoutes(r, adoptionsSvc, petsSvc, proofs, deps)
	admin.RegisterRoutes(r, opts.Gate, petsSvc, adoptionsSvc, deps)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		deps.RenderOrFail(w, r, http.StatusNotFound, "notfound", web.Page{Title: "Not found", Data: "Page not found."})
	})

	return r, nil
}

// uploadsHandler sirve los archivos guardados sin listar el directorio.
func uploadsHandler(files *uploads.Store) http.Handler {
	fs := http.FileServer(http.Dir(files.Dir()))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		fs.ServeHTTP(w, r)
	})
}
