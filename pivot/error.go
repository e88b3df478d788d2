package pivot

import "fmt"

// Reasons an aggregation can be rejected
const (
	ReasonTooManyDimensions = "too many dimensions"
	ReasonUnknownMeasure    = "unknown measure"
)

// AggregationError is returned when a pivot cannot be computed for a selection
type AggregationError struct {
	Reason string
	Detail interface{}
}

func (e *AggregationError) Error() string {
	if e.Detail == nil {
		return "aggregation failed: " + e.Reason
	}
	return fmt.Sprintf("aggregation failed: %s: %v", e.Reason, e.Detail)
}

// LogData returns the error details for structured logging
func (e *AggregationError) LogData() map[string]interface{} {
	return map[string]interface{}{
		"reason": e.Reason,
		"detail": e.Detail,
	}
}
