package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/M1estere/To-Do-API/internal/adapter/http/middleware"
	"github.com/M1estere/To-Do-API/internal/core/domain"
	"github.com/M1estere/To-Do-API/pkg/apierrors"
)

var violationMessages = map[string]string{
	domain.RuleRequired: apierrors.MsgValidationRequired,
	domain.RuleMax:      apierrors.MsgValidationMax,
	domain.RuleOneOf:    apierrors.MsgValidationOneOf,
	domain.RuleString:   apierrors.MsgValidationString,
	domain.RuleInvalid:  apierrors.MsgValidationInvalid,
}

// respondTaskError maps domain errors to their status codes. Anything unexpected is
// logged and answered with a 500 carrying failMsg.
func respondTaskError(c *gin.Context, err error, failMsg string, fields ...zap.Field) {
	lang := middleware.GetLang(c)

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(
			http.StatusUnprocessableEntity,
			apierrors.CreateValidationError(http.StatusUnprocessableEntity, violationFields(validationErr, lang), lang),
		)
		return
	}

	var conflictErr *domain.TitleConflictError
	if errors.As(err, &conflictErr) {
		c.JSON(
			http.StatusConflict,
			apierrors.CreateErrorWithData(http.StatusConflict, apierrors.MsgTaskAlreadyExists, lang, map[string]any{
				"Title": conflictErr.Title,
			}),
		)
		return
	}

	if errors.Is(err, domain.ErrTaskNotFound) {
		respondTaskNotFound(c)
		return
	}

	_ = c.Error(err)
	fields = append(fields, zap.String("message_id", failMsg), zap.Error(err))
	zap.L().Error("task request failed", fields...)
	c.JSON(
		http.StatusInternalServerError,
		apierrors.CreateError(http.StatusInternalServerError, failMsg, lang),
	)
}

func respondTaskNotFound(c *gin.Context) {
	c.JSON(
		http.StatusNotFound,
		apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, middleware.GetLang(c)),
	)
}

func violationFields(err *domain.ValidationError, lang string) map[string][]string {
	if len(err.Violations) == 0 {
		return nil
	}

	fields := make(map[string][]string, len(err.Violations))
	for _, v := range err.Violations {
		msgKey, ok := violationMessages[v.Rule]
		if !ok {
			msgKey = apierrors.MsgValidationInvalid
		}
		fields[v.Field] = append(fields[v.Field], apierrors.GetTransMsg(msgKey, lang, map[string]any{
			"Field": v.Field,
			"Param": v.Param,
		}))
	}
	return fields
}
