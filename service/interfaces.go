package service

import (
	"context"
	"net/http"
	"time"

	"github.com/ONSdigital/dp-healthcheck/healthcheck"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/cdss-cmips/adhoc-pivot-exporter/reporting"
)

//go:generate moq -out mock/server.go -pkg mock . HTTPServer
//go:generate moq -out mock/health_check.go -pkg mock . HealthChecker
//go:generate moq -out mock/reporting_client.go -pkg mock . ReportingClient
//go:generate moq -out mock/s3_client.go -pkg mock . S3Client
//go:generate moq -out mock/vault.go -pkg mock . VaultClient

// HTTPServer defines the required methods from the HTTP server
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HealthChecker defines the required methods from Healthcheck
type HealthChecker interface {
	Handler(w http.ResponseWriter, req *http.Request)
	Start(ctx context.Context)
	Stop()
	AddAndGetCheck(name string, checker healthcheck.Checker) (check *healthcheck.Check, err error)
	Subscribe(s healthcheck.Subscriber, checks ...*healthcheck.Check)
}

// ReportingClient defines the required methods from the reporting API client
type ReportingClient interface {
	reporting.Source
	Checker(context.Context, *healthcheck.CheckState) error
}

// S3Client defines the required methods from the S3 client
type S3Client interface {
	UploadWithContext(ctx context.Context, input *s3manager.UploadInput, options ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
	UploadWithPSK(input *s3manager.UploadInput, psk []byte) (*s3manager.UploadOutput, error)
	BucketName() string
	Session() *session.Session
	Checker(context.Context, *healthcheck.CheckState) error
}

// VaultClient defines the required methods from the Vault client
type VaultClient interface {
	WriteKey(path, key, value string) error
	Checker(context.Context, *healthcheck.CheckState) error
}

// Generator contains methods for dynamically required strings and tokens
// e.g. UUIDs, PSKs.
type Generator interface {
	NewPSK() ([]byte, error)
	Timestamp() time.Time
	UniqueID() (string, error)
}
