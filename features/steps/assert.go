package steps

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newQueryAssertor(expected url.Values) *queryAssertor {
	return &queryAssertor{
		expected: expected,
	}
}

// queryAssertor is a custom assertor function for httpfake.
// This asserts the reporting API is called with the expected filter and
// limit query parameters. Parameters not listed in the expected values are
// not checked.
type queryAssertor struct {
	expected url.Values
}

func (q *queryAssertor) Assert(r *http.Request) error {
	got := url.Values{}
	for k := range q.expected {
		if v, ok := r.URL.Query()[k]; ok {
			got[k] = v
		}
	}

	if diff := cmp.Diff(got, q.expected); diff != "" {
		return fmt.Errorf("request query does not match expected (-got +expected):\n%s", diff)
	}

	return nil
}

func (q *queryAssertor) Log(t testing.TB) {
	t.Log("asserting request query to reporting API")
}

func (q *queryAssertor) Error(t testing.TB, err error) {
	t.Errorf("error asserting request query to reporting API: %s", err)
}
