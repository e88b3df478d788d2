package steps

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	componenttest "github.com/ONSdigital/dp-component-test"
	"github.com/ONSdigital/dp-healthcheck/healthcheck"
	kafka "github.com/ONSdigital/dp-kafka/v4"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/maxcnunes/httpfake"

	"github.com/cdss-cmips/adhoc-pivot-exporter/config"
	"github.com/cdss-cmips/adhoc-pivot-exporter/service"
)

const (
	componentTestGroup    = "adhoc-pivot-exporter-component-test"
	localStackHost        = "http://minio:9000"
	waitEventTimeout      = 5 * time.Second
	healthCheckInterval   = time.Second
	healthCriticalTimeout = 3 * time.Second
)

// Component contains all the information to create a component test
type Component struct {
	componenttest.ErrorFeature
	APIFeature       *componenttest.APIFeature
	ReportingAPI     *httpfake.HTTPFake
	S3Downloader     *s3manager.Downloader
	HTTPServer       *http.Server
	producer         kafka.IProducer
	consumer         kafka.IConsumerGroup
	errorChan        chan error
	svc              *service.Service
	cfg              *config.Config
	wg               *sync.WaitGroup
	signals          chan os.Signal
	waitEventTimeout time.Duration
	ctx              context.Context
}

// NewComponent creates a new component with a fake reporting API and kafka
// clients for producing report-requested and consuming report-created events
func NewComponent(t *testing.T) (*Component, error) {
	c := &Component{
		ReportingAPI:     httpfake.New(httpfake.WithTesting(t)),
		HTTPServer:       &http.Server{ReadHeaderTimeout: 5 * time.Second},
		errorChan:        make(chan error),
		wg:               &sync.WaitGroup{},
		signals:          make(chan os.Signal, 1),
		waitEventTimeout: waitEventTimeout,
		ctx:              context.Background(),
	}

	cfg, err := config.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}

	cfg.ReportingAPIURL = c.ReportingAPI.ResolveURL("")
	cfg.HealthCheckInterval = healthCheckInterval
	cfg.HealthCheckCriticalTimeout = healthCriticalTimeout
	cfg.EncryptionDisabled = true
	cfg.PublishReports = false
	if cfg.LocalObjectStore == "" {
		cfg.LocalObjectStore = localStackHost
	}
	c.cfg = cfg

	log.Info(c.ctx, "component test config", log.Data{"config": cfg})

	// producer for triggering test events that will be consumed by the service
	if c.producer, err = kafka.NewProducer(c.ctx, &kafka.ProducerConfig{
		BrokerAddrs:     cfg.KafkaConfig.Addr,
		Topic:           cfg.KafkaConfig.ReportRequestedTopic,
		KafkaVersion:    &cfg.KafkaConfig.Version,
		MaxMessageBytes: &cfg.KafkaConfig.MaxBytes,
	}); err != nil {
		return nil, fmt.Errorf("error creating kafka producer: %w", err)
	}
	c.producer.LogErrors(c.ctx)

	// consumer for receiving the events produced by the service
	offset := kafka.OffsetOldest
	if c.consumer, err = kafka.NewConsumerGroup(c.ctx, &kafka.ConsumerGroupConfig{
		BrokerAddrs:  cfg.KafkaConfig.Addr,
		Topic:        cfg.KafkaConfig.ReportCreatedTopic,
		GroupName:    componentTestGroup,
		KafkaVersion: &cfg.KafkaConfig.Version,
		Offset:       &offset,
	}); err != nil {
		return nil, fmt.Errorf("error creating kafka consumer: %w", err)
	}
	if err := c.consumer.Start(); err != nil {
		return nil, fmt.Errorf("error starting kafka consumer: %w", err)
	}
	c.consumer.LogErrors(c.ctx)

	s3session, err := session.NewSession(&aws.Config{
		Endpoint:         aws.String(cfg.LocalObjectStore),
		Region:           aws.String(cfg.AWSRegion),
		S3ForcePathStyle: aws.Bool(true),
		Credentials:      credentials.NewStaticCredentials(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	c.S3Downloader = s3manager.NewDownloader(s3session)

	c.APIFeature = componenttest.NewAPIFeature(c.handler)

	return c, nil
}

// Reset clears the state left over from the previous scenario
func (c *Component) Reset() error {
	c.APIFeature.Reset()
	return nil
}

// Close stops the service under test and the kafka clients used by the component
func (c *Component) Close() error {
	if c.svc != nil {
		c.signals <- os.Interrupt
		c.wg.Wait()
	}

	if err := c.producer.Close(c.ctx); err != nil {
		log.Error(c.ctx, "error closing component test producer", err)
	}
	if err := c.consumer.Close(c.ctx); err != nil {
		log.Error(c.ctx, "error closing component test consumer", err)
	}

	c.ReportingAPI.Close()
	return nil
}

// initService overrides the service initialisers that need to point at test
// doubles and runs service.Init
func (c *Component) initService(ctx context.Context) error {
	service.GetHTTPServer = func(bindAddr string, router http.Handler) service.HTTPServer {
		c.HTTPServer.Addr = bindAddr
		c.HTTPServer.Handler = router
		return c.HTTPServer
	}

	service.GetHealthCheck = func(cfg *config.Config, buildTime, gitCommit, version string) (service.HealthChecker, error) {
		versionInfo, err := healthcheck.NewVersionInfo(
			time.Now().Format(time.RFC3339),
			"component-test",
			"v0.0.0",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get version info: %w", err)
		}
		hc := healthcheck.New(versionInfo, cfg.HealthCheckCriticalTimeout, cfg.HealthCheckInterval)
		return &hc, nil
	}

	c.svc = &service.Service{Generator: &generator{}}
	if err := c.svc.Init(ctx, c.cfg, "1", "1", "1"); err != nil {
		return fmt.Errorf("failed to initialise service: %w", err)
	}
	return nil
}

// startService runs the service until a signal is received, then closes it
func (c *Component) startService(ctx context.Context) error {
	if err := c.svc.Start(ctx, c.errorChan); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		select {
		case err := <-c.errorChan:
			log.Error(ctx, "service error received", err)
		case sig := <-c.signals:
			log.Info(ctx, "os signal received", log.Data{"signal": sig})
		}

		if err := c.svc.Close(ctx); err != nil {
			log.Error(ctx, "failed to close service", err)
		}
	}()

	return nil
}

// handler returns the router of the running service for the API steps
func (c *Component) handler() (http.Handler, error) {
	if c.HTTPServer.Handler == nil {
		return nil, fmt.Errorf("service has not been started")
	}
	return c.HTTPServer.Handler, nil
}
