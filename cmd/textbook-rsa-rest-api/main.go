package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/MGTheTrain/textbook-rsa/internal/api/rest/v1"
	"github.com/MGTheTrain/textbook-rsa/internal/app"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/persistence"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	defaultConfigPath = "../../configs/rest-app.yaml"
	shutdownTimeout   = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "signing oracle: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log, err := logger.GetLogger()
	if err != nil {
		return err
	}

	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open oracle journal: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(db); err != nil {
			log.Warn("Failed to close oracle journal: ", err)
		}
	}()

	if err := persistence.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate oracle journal: %w", err)
	}

	journal, err := persistence.NewGormOracleQueryRepository(db, log)
	if err != nil {
		return err
	}

	signer, queries, err := newOracleServices(cfg, journal, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, ":"+cfg.Port, newRouter(signer, queries, log), log)
}

// newOracleServices generates the oracle key and builds the services behind the REST routes.
// The private half never leaves this process.
func newOracleServices(cfg *config.RestConfig, journal forgery.OracleQueryRepository, log logger.Logger) (forgery.SigningOracleService, forgery.OracleQueryService, error) {
	components, err := app.NewCryptoComponents(cfg.Oracle.MaxBlindingAttempts, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize crypto components: %w", err)
	}

	keyPair, err := generateOracleKey(components.KeyFactory, &cfg.KeyGen, log)
	if err != nil {
		return nil, nil, err
	}

	refused, err := cfg.Oracle.RefusedIntegers()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid oracle settings: %w", err)
	}
	log.Info("Oracle refuses ", len(refused), " message(s)")

	signer, err := app.NewSigningOracleService(components.Engine, keyPair, journal, refused, log)
	if err != nil {
		return nil, nil, err
	}
	queries, err := app.NewOracleQueryService(journal, log)
	if err != nil {
		return nil, nil, err
	}
	return signer, queries, nil
}

func generateOracleKey(factory cryptoalg.RSAKeyFactory, settings *config.KeyGenSettings, log logger.Logger) (*keys.KeyPair, error) {
	opts, err := app.KeyGenOptionsFromSettings(settings)
	if err != nil {
		return nil, fmt.Errorf("invalid key generation settings: %w", err)
	}

	start := time.Now()
	keyPair, err := factory.Generate(rand.Reader, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate oracle key: %w", err)
	}
	log.Info("Generated ", keyPair.Public().N.BitLen(), "-bit ", settings.Mode, " oracle key in ", time.Since(start).Round(time.Millisecond))
	return keyPair, nil
}

func newRouter(signer forgery.SigningOracleService, queries forgery.OracleQueryService, log logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	v1.SetupRoutes(r, signer, queries)
	return r
}

// requestLogger routes gin access logs through the application logger
func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		line := []interface{}{c.Request.Method, " ", c.FullPath(), " ", status, " ", time.Since(start).Round(time.Microsecond)}
		switch {
		case status >= http.StatusInternalServerError:
			log.Error(line...)
		case status >= http.StatusBadRequest:
			log.Warn(line...)
		default:
			log.Debug(line...)
		}
	}
}

// serve runs the server until ctx is cancelled, then drains in-flight requests
func serve(ctx context.Context, addr string, handler http.Handler, log logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Signing oracle listening on ", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down signing oracle")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
