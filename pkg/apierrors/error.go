package apierrors

import (
	"fmt"

	"github.com/M1estere/To-Do-API/pkg/translator"

	"go.uber.org/zap"
)

// JsonErr is the body of every error response.
type JsonErr struct {
	Code    int                 `json:"-"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Error implements the error interface for JsonErr.
func (e JsonErr) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// CreateError generates a JsonErr with a translated message.
func CreateError(code int, msgKey string, lang string) JsonErr {
	return CreateErrorWithData(code, msgKey, lang, nil)
}

// CreateErrorWithData is CreateError for messages that take template data.
func CreateErrorWithData(code int, msgKey string, lang string, data map[string]any) JsonErr {
	return JsonErr{Code: code, Message: GetTransMsg(msgKey, lang, data)}
}

// CreateValidationError builds the 422 body: a summary message plus per-field reasons.
func CreateValidationError(code int, fields map[string][]string, lang string) JsonErr {
	err := CreateError(code, MsgInvalidData, lang)
	err.Errors = fields
	return err
}

// GetTransErrorMsg retrieves the translated error message.
func GetTransErrorMsg(msgKey string, lang string) string {
	return GetTransMsg(msgKey, lang, nil)
}

func GetTransMsg(msgKey string, lang string, data map[string]any) string {
	msg, err := translator.Localize(lang, msgKey, data)
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", msgKey), zap.Error(err))
		return msgKey
	}
	return msg
}
