package validation_test

import (
	"labourdesk/backend/internal/validation"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ama.mensah@example.com", true},
		{"kofi+labour@mail.gov.gh", true},
		{"", false},
		{"not-an-email", false},
		{"missing@", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.IsValidEmail(tt.email))
		})
	}
}

func TestPresentAndOptional(t *testing.T) {
	assert.False(t, validation.Present("   "))
	assert.True(t, validation.Present(" x "))

	assert.Nil(t, validation.Optional(""))
	assert.Nil(t, validation.Optional("\t"))
	got := validation.Optional("Acme Ltd")
	if assert.NotNil(t, got) {
		assert.Equal(t, "Acme Ltd", *got)
	}
}

func TestOneOf(t *testing.T) {
	allowed := []string{"pending", "closed"}
	assert.True(t, validation.OneOf("pending", allowed))
	assert.False(t, validation.OneOf("Pending", allowed))
	assert.False(t, validation.OneOf("", allowed))
}
