package web

import (
	"testing"

	"go.uber.org/goleak"
)

// Every test server owns rate limiter cleanup loops; Shutdown must stop them.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
