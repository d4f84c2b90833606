package routes

import (
	"context"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/example/brandforge/internal/config"
	"github.com/example/brandforge/internal/handlers"
	"github.com/example/brandforge/internal/middleware"
	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/repository"
	"github.com/example/brandforge/internal/services"
)

// Dependencies are the stores and integrations the routes are built on.
type Dependencies struct {
	Companies   services.CompanyStore
	BrandKits   services.BrandKitStore
	Users       services.UserStore
	Subscribers services.SubscriberStore
	Generators  services.Generators
	// RateCounter is optional; without it brand kit generation is not limited.
	RateCounter middleware.Counter
	Ping        func(ctx context.Context) error
	Registry    *prometheus.Registry
}

// NewDependencies builds the Postgres backed stores and the Groq client.
// rdb may be nil.
func NewDependencies(db *gorm.DB, rdb *redis.Client, cfg *config.Config, reg *prometheus.Registry) Dependencies {
	groq := services.NewGroqClient(services.GroqConfig{
		APIKey:    cfg.GroqAPIKey,
		BaseURL:   cfg.GroqBaseURL,
		TextModel: cfg.GroqTextModel,
		LogoModel: cfg.GroqLogoModel,
		Timeout:   cfg.GroqTimeout,
	})

	deps := Dependencies{
		Companies:   repository.NewCachedCompanyStore(repository.NewCompanyRepository(db), cfg.CompanyCacheTTL),
		BrandKits:   repository.NewBrandKitRepository(db),
		Users:       repository.NewUserRepository(db),
		Subscribers: repository.NewSubscriberRepository(db),
		Generators:  groq.Generators(),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		Registry: reg,
	}
	if rdb != nil {
		deps.RateCounter = middleware.NewRedisCounter(rdb)
	}
	return deps
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, cfg *config.Config, deps Dependencies) {
	httpMetrics := middleware.NewHTTPMetrics(deps.Registry)
	pipelineMetrics := services.NewPipelineMetrics(deps.Registry)

	companyService := services.NewCompanyService(deps.Companies)
	brandKitService := services.NewBrandKitService(companyService, deps.BrandKits, deps.Generators, pipelineMetrics)

	authHandler := handlers.NewAuthHandler(deps.Users, cfg)
	companyHandler := handlers.NewCompanyHandler(companyService)
	brandKitHandler := handlers.NewBrandKitHandler(brandKitService)
	subscribeHandler := handlers.NewSubscribeHandler(deps.Subscribers)
	healthHandler := handlers.NewHealthHandler(deps.Ping)

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions}, ","),
	}))
	app.Use(httpMetrics.Handler())

	app.Get("/health", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	api.Post("/subscribe", subscribeHandler.Subscribe)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/companies", companyHandler.List)
	protected.Post("/companies", companyHandler.Create)
	protected.Get("/companies/:slug", companyHandler.Get)
	protected.Get("/companies/:slug/members",
		middleware.RequireCompanyRole(companyService, models.RoleMember),
		companyHandler.Members,
	)

	protected.Get("/brand-kits", brandKitHandler.List)
	protected.Post("/brand-kits",
		middleware.RateLimit(deps.RateCounter, "brand-kits", cfg.BrandKitLimit, cfg.BrandKitWindow),
		brandKitHandler.Create,
	)
}
