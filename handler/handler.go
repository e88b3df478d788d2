package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"

	kafka "github.com/ONSdigital/dp-kafka/v4"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"

	"github.com/cdss-cmips/adhoc-pivot-exporter/config"
	"github.com/cdss-cmips/adhoc-pivot-exporter/event"
	"github.com/cdss-cmips/adhoc-pivot-exporter/pivot"
	"github.com/cdss-cmips/adhoc-pivot-exporter/reporting"
	"github.com/cdss-cmips/adhoc-pivot-exporter/schema"
)

// ReportRequested is the handler for the ReportRequested event
type ReportRequested struct {
	cfg         config.Config
	engine      *pivot.Engine
	reporting   ReportingClient
	s3Private   S3Client
	s3Public    S3Client
	vaultClient VaultClient
	producer    kafka.IProducer
	generator   Generator
}

// NewReportRequested creates a new ReportRequested handler
func NewReportRequested(cfg config.Config, e *pivot.Engine, r ReportingClient, sPrivate, sPublic S3Client, v VaultClient, p kafka.IProducer, g Generator) *ReportRequested {
	return &ReportRequested{
		cfg:         cfg,
		engine:      e,
		reporting:   r,
		s3Private:   sPrivate,
		s3Public:    sPublic,
		vaultClient: v,
		producer:    p,
		generator:   g,
	}
}

// Handle takes a single event.
func (h *ReportRequested) Handle(ctx context.Context, workerID int, msg kafka.Message) error {
	e := &event.ReportRequested{}
	s := schema.ReportRequested

	if err := s.Unmarshal(msg.GetData(), e); err != nil {
		return &Error{
			err: fmt.Errorf("failed to unmarshal event: %w", err),
			logData: map[string]interface{}{
				"msg_data": msg.GetData(),
			},
		}
	}

	logData := log.Data{"event": e, "worker_id": workerID}
	log.Info(ctx, "event received", logData)

	sel, err := h.ValidateEvent(e)
	if err != nil {
		return fmt.Errorf("failed to validate event: %w", err)
	}

	filters := reporting.Filters{
		County:           e.County,
		Gender:           e.Gender,
		SeverelyImpaired: e.SeverelyImpaired,
		Limit:            h.cfg.ReportRowLimit,
	}

	rows, stats, err := h.FetchData(ctx, filters)
	if err != nil {
		return &Error{
			err:     fmt.Errorf("failed to fetch report data: %w", err),
			logData: logData,
		}
	}

	log.Info(ctx, "report data obtained from reporting API", log.Data{
		"report_id":     e.ReportID,
		"rows":          len(rows.Rows),
		"total_records": stats.TotalRecords,
	})

	res, err := h.engine.Aggregate(rows.Rows, rows.Columns, sel)
	if err != nil {
		return &Error{
			err:     fmt.Errorf("failed to aggregate rows: %w", err),
			logData: logData,
		}
	}

	if res.Outcome == pivot.OutcomeNoData {
		log.Info(ctx, "no data available for report, nothing will be produced", logData)
		return nil
	}

	body, err := EncodeCSV(res.Data, res.Columns)
	if err != nil {
		return &Error{
			err:     fmt.Errorf("failed to encode csv: %w", err),
			logData: logData,
		}
	}
	size := body.Len()

	s3Location, err := h.UploadCSVFile(ctx, e.ReportID, body)
	if err != nil {
		return &Error{
			err:     fmt.Errorf("failed to upload .csv file to S3 bucket: %w", err),
			logData: logData,
		}
	}

	log.Info(ctx, "producing report created event", log.Data{
		"report_id":    e.ReportID,
		"outcome":      res.Outcome.String(),
		"s3_location":  s3Location,
		"row_count":    len(res.Data),
		"is_published": h.cfg.PublishReports,
	})

	if err := h.ProduceReportCreatedEvent(ctx, &event.ReportCreated{
		ReportID:       e.ReportID,
		FileURL:        h.FileURL(e.ReportID),
		RowCount:       int32(len(res.Data)),
		SourceRowCount: int32(len(rows.Rows)),
		Size:           int32(size),
	}); err != nil {
		return fmt.Errorf("failed to produce report created kafka message: %w", err)
	}
	return nil
}

// ValidateEvent checks the requested report against the engine catalog and
// returns the selection to aggregate with. An empty measure list selects the
// catalog defaults.
func (h *ReportRequested) ValidateEvent(e *event.ReportRequested) (pivot.Selection, error) {
	if e.ReportID == "" {
		return pivot.Selection{}, errors.New("empty report id not allowed")
	}

	c := h.engine.Catalog()
	for _, d := range e.Dimensions {
		if d != "" && !c.HasDimension(d) {
			return pivot.Selection{}, NewError(
				errors.New("unknown dimension"),
				log.Data{"dimension": d, "report_id": e.ReportID},
			)
		}
	}

	measures := c.DefaultMeasures()
	if len(e.Measures) > 0 {
		var err error
		if measures, err = pivot.MeasureSetFromNames(c, e.Measures); err != nil {
			return pivot.Selection{}, NewError(err, log.Data{"measures": e.Measures, "report_id": e.ReportID})
		}
	}

	sel, err := pivot.NewSelection(e.Dimensions, measures)
	if err != nil {
		return pivot.Selection{}, NewError(err, log.Data{"dimensions": e.Dimensions, "report_id": e.ReportID})
	}
	return sel, nil
}

// FetchData requests the flat rows and the summary stats for the filters concurrently
func (h *ReportRequested) FetchData(ctx context.Context, f reporting.Filters) (*reporting.RowsResponse, *reporting.Stats, error) {
	return reporting.Fetch(ctx, h.reporting, f)
}

// EncodeCSV writes the rows as CSV with a header line. When no columns are
// provided the union of row keys is used, sorted.
func EncodeCSV(rows []pivot.Row, columns []string) (*bytes.Buffer, error) {
	if len(columns) == 0 {
		columns = rowKeys(rows)
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			v, ok := pivot.Lookup(row, col)
			if !ok {
				record[i] = ""
				continue
			}
			record[i] = pivot.FormatValue(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf, w.Error()
}

func rowKeys(rows []pivot.Row) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// UploadCSVFile uploads the CSV body to S3.
// If reports are published, the file is stored in the public bucket.
// Otherwise it is stored in the private bucket, encrypted or un-encrypted depending on the EncryptionDisabled flag.
// Returns the S3 file location.
func (h *ReportRequested) UploadCSVFile(ctx context.Context, reportID string, file io.Reader) (string, error) {
	if reportID == "" {
		return "", errors.New("empty report id not allowed")
	}
	if file == nil {
		return "", errors.New("no file content has been provided")
	}

	filename := generateS3Filename(reportID)
	logData := log.Data{
		"filename":     filename,
		"is_published": h.cfg.PublishReports,
	}

	var result *s3manager.UploadOutput
	var err error

	switch {
	case h.cfg.PublishReports:
		bucketName := h.s3Public.BucketName()
		logData["bucket"] = bucketName
		log.Info(ctx, "uploading published file to S3", logData)

		result, err = h.s3Public.UploadWithContext(ctx, &s3manager.UploadInput{
			Body:   file,
			Bucket: &bucketName,
			Key:    &filename,
		})
		if err != nil {
			return "", NewError(fmt.Errorf("failed to upload published file to S3: %w", err), logData)
		}

	case h.cfg.EncryptionDisabled:
		bucketName := h.s3Private.BucketName()
		logData["bucket"] = bucketName
		logData["encryption_disabled"] = true
		log.Info(ctx, "uploading un-encrypted private file to S3", logData)

		result, err = h.s3Private.UploadWithContext(ctx, &s3manager.UploadInput{
			Body:   file,
			Bucket: &bucketName,
			Key:    &filename,
		})
		if err != nil {
			return "", NewError(fmt.Errorf("failed to upload un-encrypted private file to S3: %w", err), logData)
		}

	default:
		bucketName := h.s3Private.BucketName()
		logData["bucket"] = bucketName
		logData["encryption_disabled"] = false

		psk, err := h.generator.NewPSK()
		if err != nil {
			return "", NewError(fmt.Errorf("failed to generate a PSK for encryption: %w", err), logData)
		}

		vaultPath := generateVaultPathForFile(h.cfg.VaultPath, reportID)
		vaultKey := "key"
		log.Info(ctx, "writing key to vault", log.Data{"vault_path": vaultPath})

		if err := h.vaultClient.WriteKey(vaultPath, vaultKey, hex.EncodeToString(psk)); err != nil {
			return "", NewError(fmt.Errorf("failed to write key to vault: %w", err), logData)
		}

		log.Info(ctx, "uploading encrypted private file to S3", logData)

		result, err = h.s3Private.UploadWithPSK(&s3manager.UploadInput{
			Body:   file,
			Bucket: &bucketName,
			Key:    &filename,
		}, psk)
		if err != nil {
			return "", NewError(fmt.Errorf("failed to upload encrypted private file to S3: %w", err), logData)
		}
	}

	s3Location, err := url.PathUnescape(result.Location)
	if err != nil {
		logData["location"] = result.Location
		return "", NewError(fmt.Errorf("failed to unescape S3 path location: %w", err), logData)
	}
	return s3Location, nil
}

// FileURL returns the download service link for a report
func (h *ReportRequested) FileURL(reportID string) string {
	return fmt.Sprintf("%s/downloads/%s", h.cfg.DownloadServiceURL, generateS3Filename(reportID))
}

// ProduceReportCreatedEvent sends the final kafka message signifying the report is available
func (h *ReportRequested) ProduceReportCreatedEvent(ctx context.Context, e *event.ReportCreated) error {
	if err := h.producer.Send(ctx, schema.ReportCreated, e); err != nil {
		return fmt.Errorf("error sending report-created event: %w", err)
	}
	return nil
}

// generateS3Filename generates the S3 key (filename including `subpaths` after the bucket) for the provided report
func generateS3Filename(reportID string) string {
	return fmt.Sprintf("adhoc-reports/%s.csv", reportID)
}

// generateVaultPathForFile generates the vault path for the provided root and report
func generateVaultPathForFile(vaultPathRoot, reportID string) string {
	return fmt.Sprintf("%s/adhoc-reports/%s.csv", vaultPathRoot, reportID)
}
