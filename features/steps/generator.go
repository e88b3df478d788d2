package steps

import (
	"time"
)

const (
	testTimestamp = "2026-03-02T09:15:00Z"
	testPSK       = "0123456789ABCDEF"
	testUUID      = "6f1c2a9e-3b7d-4c8e-9a51-2d0e7f4b8c13"
)

// generator returns constant values so that dashboard ids, timestamps and
// PSKs are predictable in feature assertions
type generator struct{}

// NewPSK returns a new non-random array of 16 bytes
func (g *generator) NewPSK() ([]byte, error) {
	return []byte(testPSK), nil
}

// Timestamp generates a constant timestamp
func (g *generator) Timestamp() time.Time {
	t, _ := time.Parse(time.RFC3339, testTimestamp)
	return t
}

func (g *generator) UniqueID() (string, error) {
	return testUUID, nil
}
