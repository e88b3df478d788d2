package schema

import (
	"github.com/ONSdigital/dp-kafka/v4/avro"
)

var reportRequestedEvent = `{
  "type": "record",
  "name": "adhoc-report-requested",
  "fields": [
    {"name": "report_id", "type": "string", "default": ""},
    {"name": "county", "type": "string", "default": ""},
    {"name": "gender", "type": "string", "default": ""},
    {"name": "severely_impaired", "type": "string", "default": ""},
    {"name": "dimensions", "type": {"type": "array", "items": "string"}},
    {"name": "measures", "type": {"type": "array", "items": "string"}}
  ]
}`

// ReportRequested is the Avro schema for Report Requested messages.
var ReportRequested = &avro.Schema{
	Definition: reportRequestedEvent,
}

var reportCreatedEvent = `{
  "type": "record",
  "name": "adhoc-report-created",
  "fields": [
    {"name": "report_id", "type": "string", "default": ""},
    {"name": "file_url", "type": "string", "default": ""},
    {"name": "row_count", "type": "int", "default": 0},
    {"name": "source_row_count", "type": "int", "default": 0},
    {"name": "size", "type": "int", "default": 0}
  ]
}`

// ReportCreated is the Avro schema for Report Created messages.
var ReportCreated = &avro.Schema{
	Definition: reportCreatedEvent,
}
