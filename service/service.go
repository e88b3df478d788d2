package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ONSdigital/dp-healthcheck/healthcheck"
	kafka "github.com/ONSdigital/dp-kafka/v4"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/cdss-cmips/adhoc-pivot-exporter/api"
	"github.com/cdss-cmips/adhoc-pivot-exporter/config"
	"github.com/cdss-cmips/adhoc-pivot-exporter/generator"
	"github.com/cdss-cmips/adhoc-pivot-exporter/handler"
	"github.com/cdss-cmips/adhoc-pivot-exporter/pivot"
)

// Service contains all the configs, server and clients to run the report exporter
type Service struct {
	Cfg             *config.Config
	Server          HTTPServer
	HealthCheck     HealthChecker
	Consumer        kafka.IConsumerGroup
	Producer        kafka.IProducer
	ReportingClient ReportingClient
	S3PrivateClient S3Client
	S3PublicClient  S3Client
	VaultClient     VaultClient
	Engine          *pivot.Engine
	API             *api.API
	Generator       Generator
}

// New returns a new empty Service
func New() *Service {
	return &Service{}
}

// Init initialises the service and it's dependencies
func (svc *Service) Init(ctx context.Context, cfg *config.Config, buildTime, gitCommit, version string) error {
	var err error

	if cfg == nil {
		return errors.New("nil config passed to service init")
	}

	svc.Cfg = cfg
	if svc.Generator == nil {
		svc.Generator = generator.New()
	}

	catalog, err := GetCatalog(cfg)
	if err != nil {
		return fmt.Errorf("failed to load pivot catalog: %w", err)
	}
	svc.Engine = pivot.NewEngine(catalog)

	if svc.Consumer, err = GetKafkaConsumer(ctx, cfg); err != nil {
		return fmt.Errorf("failed to create kafka consumer: %w", err)
	}
	if svc.Producer, err = GetKafkaProducer(ctx, cfg); err != nil {
		return fmt.Errorf("failed to create kafka producer: %w", err)
	}
	if svc.S3PrivateClient, svc.S3PublicClient, err = GetS3Clients(cfg); err != nil {
		return fmt.Errorf("failed to initialise s3 clients: %w", err)
	}
	if !cfg.EncryptionDisabled {
		if svc.VaultClient, err = GetVault(cfg); err != nil {
			return fmt.Errorf("failed to initialise vault client: %w", err)
		}
	}

	svc.ReportingClient = GetReportingClient(cfg)

	// Event Handler for Kafka Consumer
	h := handler.NewReportRequested(
		*cfg,
		svc.Engine,
		svc.ReportingClient,
		svc.S3PrivateClient,
		svc.S3PublicClient,
		svc.VaultClient,
		svc.Producer,
		svc.Generator,
	)
	if err := svc.Consumer.RegisterHandler(ctx, h.Handle); err != nil {
		return fmt.Errorf("could not register kafka handler: %w", err)
	}

	if svc.HealthCheck, err = GetHealthCheck(cfg, buildTime, gitCommit, version); err != nil {
		return fmt.Errorf("could not instantiate healthcheck: %w", err)
	}

	if err := svc.registerCheckers(); err != nil {
		return fmt.Errorf("error initialising checkers: %w", err)
	}

	r := mux.NewRouter()
	r.Use(otelmux.Middleware(cfg.OTServiceName))
	r.StrictSlash(true).Path("/health").HandlerFunc(svc.HealthCheck.Handler)
	svc.API = api.Setup(ctx, r, svc.Engine, svc.ReportingClient, svc.Generator, cfg)

	svc.Server = GetHTTPServer(cfg.BindAddr, otelhttp.NewHandler(r, "/"))

	return nil
}

// Start the service
func (svc *Service) Start(ctx context.Context, svcErrors chan error) error {
	log.Info(ctx, "starting service")

	// Kafka error logging go-routine
	svc.Consumer.LogErrors(ctx)
	svc.Producer.LogErrors(ctx)

	// If start/stop on health updates is disabled, start consuming as soon as possible
	if !svc.Cfg.StopConsumingOnUnhealthy {
		if err := svc.Consumer.Start(); err != nil {
			return fmt.Errorf("consumer failed to start: %w", err)
		}
	}

	svc.HealthCheck.Start(ctx)

	// Run the http server in a new go-routine
	go func() {
		if err := svc.Server.ListenAndServe(); err != nil {
			svcErrors <- fmt.Errorf("failure in http listen and serve: %w", err)
		}
	}()

	return nil
}

// Close gracefully shuts the service down in the required order, with timeout
func (svc *Service) Close(ctx context.Context) error {
	timeout := svc.Cfg.GracefulShutdownTimeout
	log.Info(ctx, "commencing graceful shutdown", log.Data{"graceful_shutdown_timeout": timeout})
	ctx, cancel := context.WithTimeout(ctx, timeout)
	hasShutdownError := false

	go func() {
		defer cancel()

		// stop healthcheck, as it depends on everything else
		if svc.HealthCheck != nil {
			svc.HealthCheck.Stop()
			log.Info(ctx, "stopped health checker")
		}

		// If kafka consumer exists, stop listening to it.
		// This will automatically stop the event consumer loops and no more messages will be processed.
		// The kafka consumer will be closed after the service shuts down.
		if svc.Consumer != nil {
			if err := svc.Consumer.StopAndWait(); err != nil {
				log.Error(ctx, "error stopping kafka consumer", err)
				hasShutdownError = true
			}
			log.Info(ctx, "stopped kafka consumer")
		}

		// stop any incoming requests before closing any outbound connections
		if svc.Server != nil {
			if err := svc.Server.Shutdown(ctx); err != nil {
				log.Error(ctx, "failed to shutdown http server", err)
				hasShutdownError = true
			}
			log.Info(ctx, "stopped http server")
		}

		// If kafka consumer exists, close it.
		if svc.Consumer != nil {
			if err := svc.Consumer.Close(ctx); err != nil {
				log.Error(ctx, "error closing kafka consumer", err)
				hasShutdownError = true
			}
			log.Info(ctx, "closed kafka consumer")
		}

		// If kafka producer exists, close it.
		if svc.Producer != nil {
			if err := svc.Producer.Close(ctx); err != nil {
				log.Error(ctx, "error closing kafka producer", err)
				hasShutdownError = true
			}
			log.Info(ctx, "closed kafka producer")
		}
	}()

	// wait for shutdown success (via cancel) or failure (timeout)
	<-ctx.Done()

	// timeout expired
	if ctx.Err() == context.DeadlineExceeded {
		log.Error(ctx, "shutdown timed out", ctx.Err())
		return ctx.Err()
	}

	// other error
	if hasShutdownError {
		err := errors.New("failed to shutdown gracefully")
		log.Error(ctx, "failed to shutdown gracefully ", err)
		return err
	}

	log.Info(ctx, "graceful shutdown was successful")
	return nil
}

// registerCheckers adds the checkers for the service clients to the health check object.
// The kafka consumer subscribes to the checks of the dependencies it needs to process events.
func (svc *Service) registerCheckers() error {
	if _, err := svc.HealthCheck.AddAndGetCheck("Kafka consumer", svc.Consumer.Checker); err != nil {
		return fmt.Errorf("error adding check for Kafka consumer: %w", err)
	}

	if _, err := svc.HealthCheck.AddAndGetCheck("Kafka producer", svc.Producer.Checker); err != nil {
		return fmt.Errorf("error adding check for Kafka producer: %w", err)
	}

	checks := []*healthcheck.Check{}

	check, err := svc.HealthCheck.AddAndGetCheck("Reporting API", svc.ReportingClient.Checker)
	if err != nil {
		return fmt.Errorf("error adding check for reporting API client: %w", err)
	}
	checks = append(checks, check)

	if check, err = svc.HealthCheck.AddAndGetCheck("S3 private client", svc.S3PrivateClient.Checker); err != nil {
		return fmt.Errorf("error adding check for s3 private client: %w", err)
	}
	checks = append(checks, check)

	if check, err = svc.HealthCheck.AddAndGetCheck("S3 public client", svc.S3PublicClient.Checker); err != nil {
		return fmt.Errorf("error adding check for s3 public client: %w", err)
	}
	checks = append(checks, check)

	if !svc.Cfg.EncryptionDisabled {
		if check, err = svc.HealthCheck.AddAndGetCheck("Vault", svc.VaultClient.Checker); err != nil {
			return fmt.Errorf("error adding check for vault client: %w", err)
		}
		checks = append(checks, check)
	}

	if svc.Cfg.StopConsumingOnUnhealthy {
		svc.HealthCheck.Subscribe(svc.Consumer, checks...)
	}

	return nil
}
