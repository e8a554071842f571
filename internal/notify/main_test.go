package notify

import (
	"testing"

	"go.uber.org/goleak"
)

// Async and the worker start goroutines; none may outlive the tests.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
