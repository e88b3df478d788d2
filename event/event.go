package event

// ReportRequested provides an avro structure for a Report Requested event
type ReportRequested struct {
	ReportID         string   `avro:"report_id"         json:"report_id"`
	County           string   `avro:"county"            json:"county"`
	Gender           string   `avro:"gender"            json:"gender"`
	SeverelyImpaired string   `avro:"severely_impaired" json:"severely_impaired"`
	Dimensions       []string `avro:"dimensions"        json:"dimensions"`
	Measures         []string `avro:"measures"          json:"measures"`
}

// ReportCreated provides an avro structure for a Report Created event
type ReportCreated struct {
	ReportID       string `avro:"report_id"        json:"report_id"`
	FileURL        string `avro:"file_url"         json:"file_url"`
	RowCount       int32  `avro:"row_count"        json:"row_count"`
	SourceRowCount int32  `avro:"source_row_count" json:"source_row_count"`
	Size           int32  `avro:"size"             json:"size"`
}
