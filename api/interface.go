package api

import (
	"time"

	"github.com/cdss-cmips/adhoc-pivot-exporter/reporting"
)

//go:generate moq -out mock/reporting-client.go -pkg mock . ReportingClient
//go:generate moq -out mock/generator.go -pkg mock . Generator

// ReportingClient contains the required methods for the reporting API client
type ReportingClient interface {
	reporting.Source
}

// Generator contains methods for dynamically required strings and timestamps
type Generator interface {
	UniqueID() (string, error)
	Timestamp() time.Time
}
