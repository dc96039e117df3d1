package routes

import (
	"net/http"

	"seo-spinner/internal/auth"
	"seo-spinner/internal/config"
	"seo-spinner/internal/enhance"
	"seo-spinner/internal/handlers"
	"seo-spinner/internal/logger"
	mdlwr "seo-spinner/internal/middleware"
	"seo-spinner/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

func NewRouter(db *bun.DB, cfg *config.Config, logr *logger.Logger, enhancer *enhance.Enhancer) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	businessSvc := services.NewBusinessService(db)
	areaSvc := services.NewServiceAreaService(db, businessSvc)
	contentSvc := services.NewContentService(db)
	exportSvc := services.NewExportService(contentSvc, logr.Logger)
	analyticsSvc := services.NewAnalyticsService(db)
	generationSvc := services.NewGenerationService(services.NewContentStore(db), enhancer, cfg, logr.Logger)

	businessHandler := handlers.NewBusinessHandler(businessSvc, logr.Logger)
	areaHandler := handlers.NewServiceAreaHandler(areaSvc, logr.Logger)
	contentHandler := handlers.NewContentHandler(generationSvc, contentSvc, exportSvc, logr.Logger)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsSvc, logr.Logger)

	var authMW *mdlwr.AuthMiddleware
	var authHandler *handlers.AuthHandler
	if cfg.AuthEnabled {
		jwtMgr, err := auth.NewJWTManager(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, cfg.JWTIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
		if err != nil {
			logr.Fatal("failed to init jwt manager", zap.Error(err))
		}
		authSvc := services.NewAuthService(db, jwtMgr, cfg, logr.Logger)
		authMW = mdlwr.NewAuthMiddleware(jwtMgr, authSvc, logr.Logger)
		authHandler = handlers.NewAuthHandler(authSvc, logr.Logger, cfg.Environment == "production")
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if authHandler != nil {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", authHandler.LoginLocal)
				r.Post("/ldap", authHandler.LoginLDAP)
				r.Post("/refresh", authHandler.Refresh)
				r.Post("/logout", authHandler.Logout)
			})
		}

		r.Group(func(r chi.Router) {
			if authMW != nil {
				r.Use(authMW.JWTAuth)
			}

			r.Route("/business", func(r chi.Router) {
				r.Get("/", businessHandler.List)
				r.Post("/", businessHandler.Create)
				r.Get("/{id}", businessHandler.Get)
				r.Post("/{id}/services", businessHandler.AddService)
				r.Post("/{id}/services/bulk", businessHandler.AddServicesBulk)
				r.Post("/{id}/areas", areaHandler.AddArea)
				r.Post("/{id}/areas/bulk", areaHandler.AddAreasBulk)
				r.Delete("/services/{serviceId}", businessHandler.DeleteService)
				r.Delete("/areas/{areaId}", areaHandler.DeleteArea)
			})

			r.Route("/content", func(r chi.Router) {
				r.Get("/templates", contentHandler.ListTemplates)
				r.Post("/generate", contentHandler.Generate)
				r.Get("/generated/{businessId}", contentHandler.ListGenerated)
				r.Post("/projects", contentHandler.CreateProject)
				r.Get("/projects/{businessId}", contentHandler.ListProjects)
				r.Post("/projects/{projectId}/content", contentHandler.AttachContent)
				r.Get("/export/{projectId}/{format}", contentHandler.Export)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/dashboard/{businessId}", analyticsHandler.Dashboard)
				r.Get("/keywords/{businessId}", analyticsHandler.Keywords)
				r.Post("/keywords/{businessId}", analyticsHandler.AddKeyword)
				r.Get("/performance/{businessId}", analyticsHandler.Performance)
				r.Get("/exports/{businessId}", analyticsHandler.Exports)
				r.Post("/track/{contentId}", analyticsHandler.Track)
				r.Get("/trends/{businessId}", analyticsHandler.Trends)
			})
		})
	})

	return r
}
