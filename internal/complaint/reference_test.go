package complaint_test

import (
	"labourdesk/backend/internal/complaint"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var referenceShape = regexp.MustCompile(`^LC-\d{8}$`)

func TestGenerateReference_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Regexp(t, referenceShape, complaint.GenerateReference())
	}
}

func TestFormatReference(t *testing.T) {
	tests := []struct {
		name   string
		millis int64
		want   string
	}{
		{"keeps last eight digits", 1760781234567, "LC-81234567"},
		{"zero pads short values", 42, "LC-00000042"},
		{"zero", 0, "LC-00000000"},
		{"exact modulus boundary", 300000000, "LC-00000000"},
		{"negative clock", -1234, "LC-00001234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, complaint.FormatReference(tt.millis))
		})
	}
}

func TestGenerateReference_ConcurrentCallsStayWellFormed(t *testing.T) {
	var wg sync.WaitGroup
	refs := make(chan string, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			refs <- complaint.GenerateReference()
		}()
	}
	wg.Wait()
	close(refs)

	for ref := range refs {
		assert.Regexp(t, referenceShape, ref)
	}
}

func TestDefaultReferenceGenerator_RetriesStayWellFormed(t *testing.T) {
	for attempt := 0; attempt < 5; attempt++ {
		assert.Regexp(t, referenceShape, complaint.DefaultReferenceGenerator(attempt))
	}
}

func TestValidReference(t *testing.T) {
	assert.True(t, complaint.ValidReference("LC-12345678"))
	assert.False(t, complaint.ValidReference("LC-1234567"))
	assert.False(t, complaint.ValidReference("lc-12345678"))
	assert.False(t, complaint.ValidReference("LC-123456789"))
	assert.False(t, complaint.ValidReference(""))
}
