package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// KafkaTLSProtocolFlag informs service to use TLS protocol for kafka
const KafkaTLSProtocolFlag = "TLS"

// Config represents service configuration for adhoc-pivot-exporter
type Config struct {
	BindAddr                   string        `envconfig:"BIND_ADDR"`
	GracefulShutdownTimeout    time.Duration `envconfig:"GRACEFUL_SHUTDOWN_TIMEOUT"`
	HealthCheckInterval        time.Duration `envconfig:"HEALTHCHECK_INTERVAL"`
	HealthCheckCriticalTimeout time.Duration `envconfig:"HEALTHCHECK_CRITICAL_TIMEOUT"`
	DefaultRequestTimeout      time.Duration `envconfig:"DEFAULT_REQUEST_TIMEOUT"`
	ServiceAuthToken           string        `envconfig:"SERVICE_AUTH_TOKEN"         json:"-"`
	ReportingAPIURL            string        `envconfig:"REPORTING_API_URL"`
	ReportRowLimit             int           `envconfig:"REPORT_ROW_LIMIT"`
	StatePopulation            int64         `envconfig:"STATE_POPULATION"`
	CatalogPath                string        `envconfig:"CATALOG_PATH"`
	DashboardTTL               time.Duration `envconfig:"DASHBOARD_TTL"`
	MaxDashboards              int           `envconfig:"MAX_DASHBOARDS"`
	DownloadServiceURL         string        `envconfig:"DOWNLOAD_SERVICE_URL"`
	AWSRegion                  string        `envconfig:"AWS_REGION"`
	PublicUploadBucketName     string        `envconfig:"PUBLIC_UPLOAD_BUCKET_NAME"`
	PrivateUploadBucketName    string        `envconfig:"PRIVATE_UPLOAD_BUCKET_NAME"`
	LocalObjectStore           string        `envconfig:"LOCAL_OBJECT_STORE"`
	MinioAccessKey             string        `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey             string        `envconfig:"MINIO_SECRET_KEY"           json:"-"`
	PublishReports             bool          `envconfig:"PUBLISH_REPORTS"`
	EncryptionDisabled         bool          `envconfig:"ENCRYPTION_DISABLED"`
	VaultToken                 string        `envconfig:"VAULT_TOKEN"                json:"-"`
	VaultAddress               string        `envconfig:"VAULT_ADDR"`
	VaultPath                  string        `envconfig:"VAULT_PATH"`
	OTExporterOTLPEndpoint     string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTServiceName              string        `envconfig:"OTEL_SERVICE_NAME"`
	OTBatchTimeout             time.Duration `envconfig:"OTEL_BATCH_TIMEOUT"`
	StopConsumingOnUnhealthy   bool          `envconfig:"STOP_CONSUMING_ON_UNHEALTHY"`
	KafkaConfig                KafkaConfig
}

// KafkaConfig contains the config required to connect to Kafka
type KafkaConfig struct {
	Addr                 []string `envconfig:"KAFKA_ADDR"                            json:"-"`
	Version              string   `envconfig:"KAFKA_VERSION"`
	OffsetOldest         bool     `envconfig:"KAFKA_OFFSET_OLDEST"`
	NumWorkers           int      `envconfig:"KAFKA_NUM_WORKERS"`
	MaxBytes             int      `envconfig:"KAFKA_MAX_BYTES"`
	SecProtocol          string   `envconfig:"KAFKA_SEC_PROTO"`
	SecCACerts           string   `envconfig:"KAFKA_SEC_CA_CERTS"`
	SecClientKey         string   `envconfig:"KAFKA_SEC_CLIENT_KEY"                  json:"-"`
	SecClientCert        string   `envconfig:"KAFKA_SEC_CLIENT_CERT"`
	SecSkipVerify        bool     `envconfig:"KAFKA_SEC_SKIP_VERIFY"`
	ReportRequestedGroup string   `envconfig:"REPORT_REQUESTED_GROUP"`
	ReportRequestedTopic string   `envconfig:"REPORT_REQUESTED_TOPIC"`
	ReportCreatedTopic   string   `envconfig:"REPORT_CREATED_TOPIC"`
}

var cfg *Config

// Get returns the default config with any modifications through environment
// variables
func Get() (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{
		BindAddr:                   ":27100",
		GracefulShutdownTimeout:    5 * time.Second,
		HealthCheckInterval:        30 * time.Second,
		HealthCheckCriticalTimeout: 90 * time.Second,
		DefaultRequestTimeout:      10 * time.Second,
		ServiceAuthToken:           "",
		ReportingAPIURL:            "http://localhost:8080/api/analytics",
		ReportRowLimit:             1000,
		StatePopulation:            38814347,
		CatalogPath:                "",
		DashboardTTL:               30 * time.Minute,
		MaxDashboards:              100,
		DownloadServiceURL:         "http://localhost:23600",
		AWSRegion:                  "us-west-2",
		PublicUploadBucketName:     "cmips-adhoc-reports-public",
		PrivateUploadBucketName:    "cmips-adhoc-reports-private",
		LocalObjectStore:           "",
		MinioAccessKey:             "",
		MinioSecretKey:             "",
		PublishReports:             false,
		EncryptionDisabled:         false,
		VaultToken:                 "",
		VaultAddress:               "http://localhost:8200",
		VaultPath:                  "secret/shared/psk",
		OTExporterOTLPEndpoint:     "localhost:4317",
		OTServiceName:              "adhoc-pivot-exporter",
		OTBatchTimeout:             5 * time.Second,
		StopConsumingOnUnhealthy:   true,
		KafkaConfig: KafkaConfig{
			Addr:                 []string{"localhost:9092", "localhost:9093", "localhost:9094"},
			Version:              "1.0.2",
			OffsetOldest:         true,
			NumWorkers:           1,
			MaxBytes:             2000000,
			ReportRequestedGroup: "adhoc-pivot-exporter",
			ReportRequestedTopic: "adhoc-report-requested",
			ReportCreatedTopic:   "adhoc-report-created",
		},
	}

	return cfg, envconfig.Process("", cfg)
}
