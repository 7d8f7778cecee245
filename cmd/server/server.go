package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/pixelforge/collectibles-api/internal/entities"
	"github.com/pixelforge/collectibles-api/internal/events"
	"github.com/pixelforge/collectibles-api/internal/orchestrators/collection"
	"github.com/pixelforge/collectibles-api/internal/orchestrators/equipment"
	"github.com/pixelforge/collectibles-api/internal/orchestrators/marketplace"
	"github.com/pixelforge/collectibles-api/internal/orchestrators/template"
	"github.com/pixelforge/collectibles-api/internal/pkg/clock"
	"github.com/pixelforge/collectibles-api/internal/pkg/entitylock"
	"github.com/pixelforge/collectibles-api/internal/pkg/idgen"
	redisclient "github.com/pixelforge/collectibles-api/internal/redis"
	templaterepo "github.com/pixelforge/collectibles-api/internal/repositories/accessorytemplate"
	characterrepo "github.com/pixelforge/collectibles-api/internal/repositories/character"
	collectionrepo "github.com/pixelforge/collectibles-api/internal/repositories/collection"
	marketplacerepo "github.com/pixelforge/collectibles-api/internal/repositories/marketplace"
)

// serverConfig is read from the environment (plus an optional .env file)
type serverConfig struct {
	GRPCPort      int    `env:"GRPC_PORT" envDefault:"50051"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	AdminID       string `env:"ADMIN_CREDENTIAL_ID"`
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the collectibles server",
	Long:  `Start the collectibles server with all configured services.`,
	RunE:  runServer,
}

// services bundles the wired orchestrators for the serving layer
type services struct {
	Collection  collection.Service
	Template    template.Service
	Equipment   equipment.Service
	Marketplace marketplace.Service
}

// registerHealth publishes one health status per domain service so probes can
// target a single service instead of the whole process
func (s *services) registerHealth(h *health.Server) {
	for name, wired := range map[string]bool{
		"collection":  s.Collection != nil,
		"template":    s.Template != nil,
		"equipment":   s.Equipment != nil,
		"marketplace": s.Marketplace != nil,
	} {
		status := grpc_health_v1.HealthCheckResponse_SERVING
		if !wired {
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
		h.SetServingStatus(name, status)
	}
}

// bootstrap mints the one admin credential for this deployment and wires
// every orchestrator against it. Called exactly once at startup; there is no
// other way to obtain a credential the services will accept.
func bootstrap(cfg *serverConfig, client redisclient.Client) (*services, error) {
	adminID := cfg.AdminID
	if adminID == "" {
		adminID = idgen.NewUUID("admin").Generate()
	}
	admin := entities.NewAdminCredential(adminID)

	clk := clock.New()
	locks := entitylock.NewKeyed()
	publisher := events.NewRedisPublisher(client)

	collRepo, err := collectionrepo.NewRedis(&collectionrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create collection repository: %w", err)
	}
	charRepo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create character repository: %w", err)
	}
	tmplRepo, err := templaterepo.NewRedis(&templaterepo.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create template repository: %w", err)
	}
	mktRepo, err := marketplacerepo.NewRedis(&marketplacerepo.RedisConfig{Client: client})
	if err != nil {
		return nil, fmt.Errorf("failed to create marketplace repository: %w", err)
	}

	collSvc, err := collection.NewOrchestrator(&collection.Config{
		CollectionRepo:  collRepo,
		CharacterRepo:   charRepo,
		Publisher:       publisher,
		Clock:           clk,
		CollectionIDGen: idgen.NewUUID("coll"),
		CharacterIDGen:  idgen.NewUUID("char"),
		Admin:           admin,
		Locks:           locks,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create collection service: %w", err)
	}

	tmplSvc, err := template.NewOrchestrator(&template.Config{
		TemplateRepo:   tmplRepo,
		Clock:          clk,
		TemplateIDGen:  idgen.NewUUID("tmpl"),
		AccessoryIDGen: idgen.NewUUID("acc"),
		Admin:          admin,
		Locks:          locks,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create template service: %w", err)
	}

	equipSvc, err := equipment.NewOrchestrator(&equipment.Config{
		CharacterRepo: charRepo,
		Publisher:     publisher,
		Clock:         clk,
		Locks:         locks,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create equipment service: %w", err)
	}

	mktSvc, err := marketplace.NewOrchestrator(&marketplace.Config{
		MarketplaceRepo:  mktRepo,
		CollectionRepo:   collRepo,
		Publisher:        publisher,
		Clock:            clk,
		MarketplaceIDGen: idgen.NewUUID("mkt"),
		Admin:            admin,
		Locks:            locks,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create marketplace service: %w", err)
	}

	return &services{
		Collection:  collSvc,
		Template:    tmplSvc,
		Equipment:   equipSvc,
		Marketplace: mktSvc,
	}, nil
}

func runServer(cmd *cobra.Command, args []string) error {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("received shutdown signal, gracefully stopping")
		cancel()
	}()

	client, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		PoolSize: cfg.RedisPoolSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}

	svcs, err := bootstrap(&cfg, client)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpc_logging.LoggerFunc(logFunc)),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	svcs.registerHealth(healthServer)

	reflection.Register(srv)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort)
		if err := srv.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down gRPC server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()

		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}

		return nil
	case err := <-errChan:
		return err
	}
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	switch level {
	case grpc_logging.LevelDebug:
		slog.DebugContext(ctx, msg, fields...)
	case grpc_logging.LevelWarn:
		slog.WarnContext(ctx, msg, fields...)
	case grpc_logging.LevelError:
		slog.ErrorContext(ctx, msg, fields...)
	default:
		slog.InfoContext(ctx, msg, fields...)
	}
}
