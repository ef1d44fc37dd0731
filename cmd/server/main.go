package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/fintrack/internal/auth"
	"github.com/mmynk/fintrack/internal/config"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/metrics"
	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/service"
	"github.com/mmynk/fintrack/internal/storage/sqlite"
	"github.com/mmynk/fintrack/pkg/api/apiconnect"
	"github.com/mmynk/fintrack/pkg/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("FINTRACK_CONFIG"), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel())
	logger.Info("Config loaded", "env", cfg.Env)

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.Database.Path)

	m := metrics.New()
	l := ledger.New(store, ledger.WithLogger(logger), ledger.WithRecorder(m))

	if cfg.UsesDevSecret() {
		logger.Warn("Using the development JWT secret; set FINTRACK_AUTH_SECRET and FINTRACK_ENV=prod in production")
	}
	jwtManager := auth.NewJWTManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(logger),
		m.Interceptor(),
		middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(service.NewAuthService(authenticator, jwtManager, logger), interceptors))
	mux.Handle(apiconnect.NewCurrencyServiceHandler(service.NewCurrencyService(l, logger), interceptors))
	mux.Handle(apiconnect.NewAccountServiceHandler(service.NewAccountService(l, logger), interceptors))
	mux.Handle(apiconnect.NewTransactionServiceHandler(service.NewTransactionService(l, logger), interceptors))
	mux.Handle(apiconnect.NewDebtServiceHandler(service.NewDebtService(l, logger), interceptors))
	mux.Handle("/metrics", m.Handler())

	staticDir, err := filepath.Abs(cfg.Server.StaticPath)
	if err != nil {
		logger.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	logger.Info("Serving static files", "path", staticDir)
	mux.Handle("/", staticHandler(staticDir))

	handler := middleware.Logging(logger, middleware.CORS(mux))

	// h2c serves HTTP/2 without TLS for Connect clients
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := cfg.Addr()
	logger.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost:%d", cfg.Server.Port))
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// staticHandler serves the UI. Unknown paths fall back to index.html.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiconnect.PathPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	})
}
