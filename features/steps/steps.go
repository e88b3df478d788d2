package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	assistdog "github.com/ONSdigital/dp-assistdog"
	"github.com/ONSdigital/log.go/v2/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/cucumber/godog"
	"github.com/google/go-cmp/cmp"

	"github.com/cdss-cmips/adhoc-pivot-exporter/event"
	"github.com/cdss-cmips/adhoc-pivot-exporter/schema"
)

// RegisterSteps maps the human-readable regular expressions to their corresponding funcs
func (c *Component) RegisterSteps(ctx *godog.ScenarioContext) {
	c.APIFeature.RegisterSteps(ctx)

	ctx.Step(`^the reporting API is healthy$`, c.reportingAPIIsHealthy)
	ctx.Step(`^the reporting API returns the following rows:$`, c.theReportingAPIReturnsTheFollowingRows)
	ctx.Step(`^the reporting API returns the following rows for the query "([^"]*)":$`, c.theReportingAPIReturnsTheFollowingRowsForTheQuery)
	ctx.Step(`^the reporting API returns the following stats:$`, c.theReportingAPIReturnsTheFollowingStats)
	ctx.Step(`^the reporting API is unavailable$`, c.theReportingAPIIsUnavailable)
	ctx.Step(`^the service starts$`, c.theServiceStarts)
	ctx.Step(`^this report-requested event is consumed:$`, c.thisReportRequestedEventIsConsumed)
	ctx.Step(`^these report-created events are produced:$`, c.theseReportCreatedEventsAreProduced)
	ctx.Step(`^no report-created events are produced$`, c.noReportCreatedEventsAreProduced)
	ctx.Step(`^a file with filename "([^"]*)" can be seen in minio$`, c.theFollowingFileCanBeSeenInMinio)
	ctx.Step(`^a file with filename "([^"]*)" and the following content can be seen in minio:$`, c.theFollowingFileWithContentCanBeSeenInMinio)
}

func (c *Component) reportingAPIIsHealthy() error {
	c.ReportingAPI.NewHandler().
		Get("/health").
		Reply(http.StatusOK)
	return nil
}

// theReportingAPIReturnsTheFollowingRows generates a mocked response for the
// reporting API GET /adhoc/data with the provided body
func (c *Component) theReportingAPIReturnsTheFollowingRows(body *godog.DocString) error {
	c.ReportingAPI.NewHandler().
		Get("/adhoc/data").
		Reply(http.StatusOK).
		BodyString(body.Content)
	return nil
}

// theReportingAPIReturnsTheFollowingRowsForTheQuery generates a mocked response
// for the reporting API GET /adhoc/data and asserts the filters it is called with
func (c *Component) theReportingAPIReturnsTheFollowingRowsForTheQuery(query string, body *godog.DocString) error {
	expected, err := url.ParseQuery(query)
	if err != nil {
		return fmt.Errorf("failed to parse expected query: %w", err)
	}

	c.ReportingAPI.NewHandler().
		Get("/adhoc/data").
		AssertCustom(newQueryAssertor(expected)).
		Reply(http.StatusOK).
		BodyString(body.Content)
	return nil
}

// theReportingAPIReturnsTheFollowingStats generates a mocked response for the
// reporting API GET /adhoc/stats with the provided body
func (c *Component) theReportingAPIReturnsTheFollowingStats(body *godog.DocString) error {
	c.ReportingAPI.NewHandler().
		Get("/adhoc/stats").
		Reply(http.StatusOK).
		BodyString(body.Content)
	return nil
}

func (c *Component) theReportingAPIIsUnavailable() error {
	c.ReportingAPI.NewHandler().
		Get("/adhoc/data").
		Reply(http.StatusServiceUnavailable)
	c.ReportingAPI.NewHandler().
		Get("/adhoc/stats").
		Reply(http.StatusServiceUnavailable)
	return nil
}

func (c *Component) theServiceStarts() error {
	if err := c.initService(c.ctx); err != nil {
		return err
	}
	return c.startService(c.ctx)
}

// theseReportCreatedEventsAreProduced consumes kafka messages that are expected to be produced by the service under test
// and validates that they match the expected values in the test
func (c *Component) theseReportCreatedEventsAreProduced(events *godog.Table) error {
	expected, err := assistdog.NewDefault().CreateSlice(new(event.ReportCreated), events)
	if err != nil {
		return fmt.Errorf("failed to create slice from godog table: %w", err)
	}

	got, err := c.listen()
	if err != nil {
		return err
	}

	if diff := cmp.Diff(got, expected); diff != "" {
		return fmt.Errorf("-got +expected)\n%s", diff)
	}

	return nil
}

func (c *Component) noReportCreatedEventsAreProduced() error {
	got, err := c.listen()
	if err != nil {
		return err
	}
	if len(got) != 0 {
		return fmt.Errorf("expected no report-created events, got %d", len(got))
	}
	return nil
}

// listen collects report-created events until none arrive within the wait timeout
func (c *Component) listen() ([]*event.ReportCreated, error) {
	var got []*event.ReportCreated

	for {
		select {
		case <-time.After(c.waitEventTimeout):
			return got, nil
		case <-c.consumer.Channels().Closer:
			return nil, errors.New("closer channel closed")
		case msg, ok := <-c.consumer.Channels().Upstream:
			if !ok {
				return nil, errors.New("upstream channel closed")
			}

			var e event.ReportCreated
			err := schema.ReportCreated.Unmarshal(msg.GetData(), &e)

			msg.Commit()
			msg.Release()

			if err != nil {
				return nil, fmt.Errorf("error unmarshalling message: %w", err)
			}

			got = append(got, &e)
		}
	}
}

func (c *Component) thisReportRequestedEventIsConsumed(input *godog.DocString) error {
	ctx := context.Background()

	var testEvent event.ReportRequested
	if err := json.Unmarshal([]byte(input.Content), &testEvent); err != nil {
		return fmt.Errorf("error unmarshaling input to event: %w body: %s", err, input.Content)
	}

	log.Info(ctx, "sending report-requested event", log.Data{
		"event": testEvent,
	})

	if err := c.waitForProducer(ctx); err != nil {
		return err
	}

	// retry sending with backoff, the sarama session may not be established yet
	retries := 10
	timeout := time.Second
	for {
		err := c.producer.Send(ctx, schema.ReportRequested, &testEvent)
		if err == nil {
			return nil
		}

		retries--
		if retries == 0 {
			return fmt.Errorf("failed to send report-requested event: %w", err)
		}

		log.Info(ctx, "error sending report-requested event. Retrying.", log.Data{
			"error":        err.Error(),
			"retries_left": retries,
		})

		time.Sleep(timeout)
		timeout *= 2
	}
}

func (c *Component) waitForProducer(ctx context.Context) error {
	select {
	case <-c.producer.Channels().Initialised:
		return nil
	case <-time.After(c.waitEventTimeout):
		return errors.New("component test kafka producer not initialised")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Component) theFollowingFileCanBeSeenInMinio(fileName string) error {
	b, err := c.downloadFromMinio(fileName)
	if err != nil {
		return err
	}

	if len(b) < 1 {
		return errors.New("file length zero")
	}

	return nil
}

func (c *Component) theFollowingFileWithContentCanBeSeenInMinio(fileName string, content *godog.DocString) error {
	b, err := c.downloadFromMinio(fileName)
	if err != nil {
		return err
	}

	expected := strings.TrimSpace(content.Content)
	if diff := cmp.Diff(strings.TrimSpace(string(b)), expected); diff != "" {
		return fmt.Errorf("file content does not match (-got +expected)\n%s", diff)
	}

	return nil
}

// downloadFromMinio probes the private bucket with backoff to give time for
// the event to be processed
func (c *Component) downloadFromMinio(fileName string) ([]byte, error) {
	ctx := context.Background()

	var b []byte
	f := aws.NewWriteAtBuffer(b)

	retries := 10
	timeout := time.Second
	var err error

	for {
		if _, err = c.S3Downloader.Download(f, &s3.GetObjectInput{
			Bucket: aws.String(c.cfg.PrivateUploadBucketName),
			Key:    aws.String(fileName),
		}); err == nil || retries <= 0 {
			break
		}

		retries--

		log.Info(ctx, "error obtaining file from minio. Retrying.", log.Data{
			"error":        err,
			"retries_left": retries,
		})

		time.Sleep(timeout)
		timeout *= 2
	}
	if err != nil {
		return nil, fmt.Errorf("error obtaining file from minio. Last error: %w", err)
	}

	log.Info(ctx, "got file contents", log.Data{
		"contents": string(f.Bytes()),
	})

	return f.Bytes(), nil
}
