package handler

import (
	"context"

	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/cdss-cmips/adhoc-pivot-exporter/reporting"
)

//go:generate moq -out mock/reporting-client.go -pkg mock . ReportingClient
//go:generate moq -out mock/s3-client.go -pkg mock . S3Client
//go:generate moq -out mock/vault.go -pkg mock . VaultClient
//go:generate moq -out mock/generator.go -pkg mock . Generator

// ReportingClient contains the required methods for the reporting API client
type ReportingClient interface {
	reporting.Source
}

// S3Client contains the required methods for the S3 Client
type S3Client interface {
	UploadWithContext(ctx context.Context, input *s3manager.UploadInput, options ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
	UploadWithPSK(input *s3manager.UploadInput, psk []byte) (*s3manager.UploadOutput, error)
	BucketName() string
}

// VaultClient contains the required methods for the Vault Client
type VaultClient interface {
	WriteKey(path, key, value string) error
}

// Generator contains methods for dynamically required strings and tokens
// e.g. PSKs.
type Generator interface {
	NewPSK() ([]byte, error)
}
