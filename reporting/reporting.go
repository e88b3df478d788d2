package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ONSdigital/dp-api-clients-go/v2/headers"
	"github.com/ONSdigital/dp-api-clients-go/v2/health"
	"github.com/ONSdigital/dp-healthcheck/healthcheck"
	dphttp "github.com/ONSdigital/dp-net/v2/http"
	"github.com/ONSdigital/log.go/v2/log"

	"github.com/cdss-cmips/adhoc-pivot-exporter/pivot"
)

const (
	service = "reporting-api"

	// StatusSuccess is the status value the reporting API sends on success
	StatusSuccess = "SUCCESS"

	// AllOption is the filter value meaning no filtering
	AllOption = "(All)"

	// DefaultLimit is the number of rows requested when no limit is set
	DefaultLimit = 1000
)

// Filters narrows the rows and stats returned by the reporting API
type Filters struct {
	County           string `json:"county,omitempty"`
	Gender           string `json:"gender,omitempty"`
	SeverelyImpaired string `json:"severely_impaired,omitempty"`
	Limit            int    `json:"limit,omitempty"`
}

// Values returns the query parameters for the filters. Empty and (All) values
// are left out.
func (f Filters) Values() url.Values {
	v := url.Values{}
	add := func(key, value string) {
		if value != "" && value != AllOption {
			v.Set(key, value)
		}
	}
	add("county", f.County)
	add("gender", f.Gender)
	add("severelyImpaired", f.SeverelyImpaired)
	return v
}

// RowsResponse is the flat dataset returned by GET /adhoc/data
type RowsResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Rows    []pivot.Row `json:"rows"`
	Columns []string    `json:"columns"`
}

// Stats are the summary metrics for a filtered dataset
type Stats struct {
	TotalRecords int64   `json:"totalRecords"`
	TotalHours   float64 `json:"totalHours"`
	AvgHours     float64 `json:"avgHours"`
}

// StatsResponse is returned by GET /adhoc/stats
type StatsResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Stats   *Stats `json:"stats"`
}

// Client is a reporting API client
type Client struct {
	hcCli     *health.Client
	cli       dphttp.Clienter
	url       string
	authToken string
}

// New creates a new reporting API client using the provided clienter
func New(reportingAPIURL, serviceAuthToken string, clienter dphttp.Clienter) *Client {
	reportingAPIURL = strings.TrimSuffix(reportingAPIURL, "/")
	return &Client{
		hcCli:     health.NewClientWithClienter(service, reportingAPIURL, clienter),
		cli:       clienter,
		url:       reportingAPIURL,
		authToken: serviceAuthToken,
	}
}

// Checker calls the reporting API health endpoint and updates the provided CheckState
func (c *Client) Checker(ctx context.Context, state *healthcheck.CheckState) error {
	return c.hcCli.Checker(ctx, state)
}

// GetRows returns the flat row set for the filters
func (c *Client) GetRows(ctx context.Context, f Filters) (*RowsResponse, error) {
	q := f.Values()
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	q.Set("limit", strconv.Itoa(limit))

	var resp RowsResponse
	if err := c.get(ctx, "/adhoc/data", q, &resp); err != nil {
		return nil, err
	}
	if resp.Status != StatusSuccess {
		return nil, &Error{
			err:     fmt.Errorf("unexpected status from reporting API: %s", resp.Status),
			logData: log.Data{"status": resp.Status, "message": resp.Message, "path": "/adhoc/data"},
		}
	}
	return &resp, nil
}

// GetStats returns the summary metrics for the filters
func (c *Client) GetStats(ctx context.Context, f Filters) (*Stats, error) {
	var resp StatsResponse
	if err := c.get(ctx, "/adhoc/stats", f.Values(), &resp); err != nil {
		return nil, err
	}
	if resp.Status != StatusSuccess || resp.Stats == nil {
		return nil, &Error{
			err:     fmt.Errorf("unexpected status from reporting API: %s", resp.Status),
			logData: log.Data{"status": resp.Status, "message": resp.Message, "path": "/adhoc/stats"},
		}
	}
	return resp.Stats, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, target interface{}) error {
	uri := c.url + path
	if len(q) > 0 {
		uri += "?" + q.Encode()
	}
	logData := log.Data{"uri": uri}

	req, err := http.NewRequest(http.MethodGet, uri, http.NoBody)
	if err != nil {
		return &Error{err: fmt.Errorf("failed to create request: %w", err), logData: logData}
	}
	if c.authToken != "" {
		if err := headers.SetServiceAuthToken(req, c.authToken); err != nil {
			return &Error{err: fmt.Errorf("failed to set service auth token: %w", err), logData: logData}
		}
	}

	resp, err := c.cli.Do(ctx, req)
	if err != nil {
		return &Error{err: fmt.Errorf("failed to call reporting API: %w", err), logData: logData}
	}
	defer closeResponseBody(ctx, resp)

	if resp.StatusCode != http.StatusOK {
		logData["response_status"] = resp.StatusCode
		return &Error{
			err:        fmt.Errorf("unexpected response from reporting API: %d", resp.StatusCode),
			statusCode: resp.StatusCode,
			logData:    logData,
		}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return &Error{err: fmt.Errorf("failed to decode reporting API response: %w", err), logData: logData}
	}
	return nil
}

// closeResponseBody closes the response body and logs an error if unsuccessful
func closeResponseBody(ctx context.Context, resp *http.Response) {
	if resp.Body != nil {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			log.Error(ctx, "error draining http response body", err)
		}
		if err := resp.Body.Close(); err != nil {
			log.Error(ctx, "error closing http response body", err)
		}
	}
}
