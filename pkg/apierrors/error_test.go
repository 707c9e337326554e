package apierrors_test

import (
	"os"
	"testing"

	"github.com/M1estere/To-Do-API/pkg/apierrors"
	"github.com/M1estere/To-Do-API/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMain(m *testing.M) {
	// Initialize minimal translator for tests
	translator.Translator = i18n.NewBundle(language.English)
	err := translator.Translator.AddMessages(language.English,
		&i18n.Message{ID: "test_key", Other: "Test message"},
		&i18n.Message{ID: "conflict_key", Other: "Task `{{.Title}}` already exists"},
		&i18n.Message{ID: apierrors.MsgInvalidData, Other: "The given data was invalid."},
	)
	if err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestCreateError_ReturnsJsonErr(t *testing.T) {
	err := apierrors.CreateError(404, "test_key", "en")
	assert.Equal(t, 404, err.Code)
	assert.Equal(t, "Test message", err.Message)
	assert.Nil(t, err.Errors)
}

func TestCreateErrorWithData_RendersTemplate(t *testing.T) {
	err := apierrors.CreateErrorWithData(409, "conflict_key", "en", map[string]any{"Title": "Buy milk"})
	assert.Equal(t, "Task `Buy milk` already exists", err.Message)
}

func TestCreateValidationError_CarriesFields(t *testing.T) {
	fields := map[string][]string{"title": {"The title field is required."}}
	err := apierrors.CreateValidationError(422, fields, "en")
	assert.Equal(t, 422, err.Code)
	assert.Equal(t, "The given data was invalid.", err.Message)
	assert.Equal(t, fields, err.Errors)
}

func TestGetTransErrorMsg_ReturnsTranslation(t *testing.T) {
	msg := apierrors.GetTransErrorMsg("test_key", "en")
	assert.Equal(t, "Test message", msg)
}

func TestGetTransErrorMsg_FallbackToKey(t *testing.T) {
	msg := apierrors.GetTransErrorMsg("unknown_key", "en")
	assert.Equal(t, "unknown_key", msg)
}

func TestJsonErr_ErrorMethod(t *testing.T) {
	err := apierrors.CreateError(500, "test_key", "en")
	assert.Equal(t, "Code: 500, Message: Test message", err.Error())
}
