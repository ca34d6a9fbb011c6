// Package app wires the storefront service together: configuration,
// catalog backend selection, session manager, token issuer, chat gateway
// and the HTTP server with its middleware chain.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/atlas-parfum/internal/auth"
	"github.com/xenking/atlas-parfum/internal/catalog"
	"github.com/xenking/atlas-parfum/internal/chat"
	"github.com/xenking/atlas-parfum/internal/handler"
	"github.com/xenking/atlas-parfum/internal/repository"
	"github.com/xenking/atlas-parfum/internal/session"
	"github.com/xenking/atlas-parfum/pkg/health"
	"github.com/xenking/atlas-parfum/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles
// graceful shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	// Catalog: PostgreSQL when configured, embedded otherwise.
	var products catalog.Repository
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		if err := repository.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}

		healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
			return pool.Ping(ctx)
		})
		products = repository.NewProductRepository(pool)
		lg.Info("Catalog backed by PostgreSQL")
	} else {
		products = catalog.Static()
		lg.Info("Catalog backed by embedded data")
	}

	sessions := session.NewManager(cfg.SessionDir, lg.Named("session"))
	sessions.StartCleanup(ctx, cfg.SessionIdleTTL)
	issuer := auth.NewIssuer([]byte(cfg.JWTSecret))
	if !issuer.Configured() {
		lg.Warn("JWT secret not set, token issuance disabled")
	}

	var chatOpts []chat.Option
	if cfg.ChatModel != "" {
		chatOpts = append(chatOpts, chat.WithModel(cfg.ChatModel))
	}
	chatClient := chat.NewClient(cfg.GeminiAPIKey, chatOpts...)
	if !chatClient.Configured() {
		lg.Warn("Upstream API key not set, chat disabled")
	}

	h := handler.New(
		handler.Config{
			AuthEmail:       cfg.AuthEmail,
			AuthPassword:    cfg.AuthPassword,
			ChatRequireAuth: cfg.ChatRequireAuth,
		},
		products,
		sessions,
		issuer,
		chatClient,
	)
	h.StartCleanup(ctx, cfg.SessionIdleTTL)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	h.Register(mux)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      35 * time.Second, // chat proxies a slow upstream
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(
			otelhttp.NewHandler(mux, "atlas-parfum",
				otelhttp.WithTracerProvider(m.TracerProvider()),
				otelhttp.WithMeterProvider(m.MeterProvider()),
			),
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:  cfg.CORS.Origins,
				ExposeHeaders: []string{"X-Session-ID", "X-Request-ID"},
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				RPS:   cfg.RateLimit.RPS,
				Burst: cfg.RateLimit.Burst,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	healthSvc.SetReady(true)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
