package localization_test

import (
	"labourdesk/backend/internal/localization"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"locales/en.json":    {Data: []byte(`{"greeting": "Hello {name}", "only_en": "English only"}`)},
		"locales/tw.json":    {Data: []byte(`{"greeting": "Akwaaba {name}"}`)},
		"locales/README.txt": {Data: []byte("ignored")},
	}
}

func TestGetString_FallsBackToEnglishThenKey(t *testing.T) {
	l, err := localization.NewLocalizer(testFS(), "locales")
	require.NoError(t, err)

	assert.Equal(t, "Akwaaba {name}", l.GetString("tw", "greeting"))
	assert.Equal(t, "English only", l.GetString("tw", "only_en"))
	assert.Equal(t, "English only", l.GetString("fr", "only_en"))
	assert.Equal(t, "missing.key", l.GetString("en", "missing.key"))
}

func TestRender_SubstitutesPlaceholders(t *testing.T) {
	l, err := localization.NewLocalizer(testFS(), "locales")
	require.NoError(t, err)

	assert.Equal(t, "Hello Ama", l.Render("en", "greeting", map[string]string{"name": "Ama"}))
	assert.Equal(t, "Hello {name}", l.Render("en", "greeting", nil))
}

func TestNewLocalizer_InvalidJSON(t *testing.T) {
	fsys := fstest.MapFS{"locales/en.json": {Data: []byte(`{not json`)}}
	_, err := localization.NewLocalizer(fsys, "locales")
	assert.Error(t, err)
}

func TestDefault_HasEmailAndAlertKeys(t *testing.T) {
	l, err := localization.Default()
	require.NoError(t, err)

	for _, key := range []string{
		"email.complaint_received.subject",
		"email.complaint_status_changed.subject",
		"alert.new_complaint",
		"alert.new_contact",
		"chat.system_prompt",
	} {
		assert.NotEqual(t, key, l.GetString("en", key), "catalog should define %s", key)
	}
	assert.Equal(t, "Complaint received - reference LC-00000001",
		l.Render("en", "email.complaint_received.subject", map[string]string{"reference": "LC-00000001"}))
}
