package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	oapimiddleware "github.com/oapi-codegen/nethttp-middleware"
	"go.uber.org/zap"

	"github.com/tidenote/tidenote/contracts"
	authhandler "github.com/tidenote/tidenote/domains/auth/be/handler"
	authrepo "github.com/tidenote/tidenote/domains/auth/be/repo"
	authservice "github.com/tidenote/tidenote/domains/auth/be/service"
	noteshandler "github.com/tidenote/tidenote/domains/notes/be/handler"
	notesrepo "github.com/tidenote/tidenote/domains/notes/be/repo"
	notesservice "github.com/tidenote/tidenote/domains/notes/be/service"
	tenantshandler "github.com/tidenote/tidenote/domains/tenants/be/handler"
	tenantsrepo "github.com/tidenote/tidenote/domains/tenants/be/repo"
	tenantsservice "github.com/tidenote/tidenote/domains/tenants/be/service"
	platformauth "github.com/tidenote/tidenote/platform/go/auth"
	platformlogging "github.com/tidenote/tidenote/platform/go/logging"
	platformmetrics "github.com/tidenote/tidenote/platform/go/metrics"
	platformmiddleware "github.com/tidenote/tidenote/platform/go/middleware"
	"github.com/tidenote/tidenote/platform/go/persistence"
)

type config struct {
	Port            string        `env:"PORT" envDefault:"3000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseURL     string        `env:"DATABASE_URL,required"`
	JWTSecret       string        `env:"JWT_SECRET,required"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
	AllowedOrigins  []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := platformlogging.NewLogger(platformlogging.Config{
		Component: "api-server",
		Level:     cfg.LogLevel,
	})
	if err != nil {
		log.Fatalf("init zap logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	codec, err := platformauth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Fatal("init token codec", zap.Error(err))
	}

	pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: cfg.DatabaseURL})
	if err != nil {
		logger.Fatal("init postgres pool", zap.Error(err))
	}
	defer persistence.ClosePool(pool)

	tenantStore, err := persistence.NewTenantStore(ctx, pool)
	if err != nil {
		logger.Fatal("init tenant store", zap.Error(err))
	}

	userStore, err := persistence.NewUserStore(ctx, pool)
	if err != nil {
		logger.Fatal("init user store", zap.Error(err))
	}

	noteStore, err := persistence.NewNoteStore(ctx, pool)
	if err != nil {
		logger.Fatal("init note store", zap.Error(err))
	}

	authRepo := authrepo.NewPostgresRepository(tenantStore, userStore)
	authService := authservice.New(authRepo, codec)
	authHTTPHandler := authhandler.New(authService, logger)

	notesRepo := notesrepo.NewPostgresRepository(tenantStore, noteStore)
	notesService := notesservice.New(notesRepo)
	notesHTTPHandler := noteshandler.New(notesService, logger)

	tenantsRepo := tenantsrepo.NewPostgresRepository(tenantStore)
	tenantsService := tenantsservice.New(tenantsRepo)
	tenantsHTTPHandler := tenantshandler.New(tenantsService, logger)

	httpMetrics := platformmetrics.NewHTTPMetrics("api-server")

	rootRouter := chi.NewRouter()

	rootRouter.Use(
		chimw.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		chimw.Timeout(cfg.RequestTimeout),
		platformmiddleware.CORS(cfg.AllowedOrigins),
	)

	rootRouter.Use(platformlogging.RequestLogger(logger))
	rootRouter.Use(httpMetrics.Middleware)

	rootRouter.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	rootRouter.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	rootRouter.Method(http.MethodGet, "/metrics", platformmetrics.Handler())

	// Public auth endpoints.
	rootRouter.Group(func(r chi.Router) {
		authHTTPHandler.Routes(r)
	})

	contractValidator := mustNewSpecValidator(logger, contracts.NotesAPI)

	// Authenticated surface. Claims are verified first, then the request is
	// checked against the embedded OpenAPI contract.
	rootRouter.Group(func(r chi.Router) {
		r.Use(platformauth.Require(codec))
		r.Use(contractValidator)
		notesHTTPHandler.Routes(r)

		r.Group(func(admin chi.Router) {
			admin.Use(platformauth.RequireRole(persistence.RoleAdmin))
			tenantsHTTPHandler.Routes(admin)
		})
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      rootRouter,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Info("starting api server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

// mustNewSpecValidator loads the embedded OpenAPI document and builds request
// validator middleware so handlers only see contract-compliant requests.
func mustNewSpecValidator(logger *zap.Logger, raw []byte) func(http.Handler) http.Handler {
	loader := openapi3.NewLoader()

	spec, err := loader.LoadFromData(raw)
	if err != nil {
		logger.Fatal("load openapi spec", zap.Error(err))
	}
	if err := spec.Validate(loader.Context); err != nil {
		logger.Fatal("validate openapi spec", zap.Error(err))
	}

	return oapimiddleware.OapiRequestValidatorWithOptions(spec, &oapimiddleware.Options{
		Options: openapi3filter.Options{
			AuthenticationFunc: platformmiddleware.ValidateAuthenticationViaSwagger,
		},
	})
}
