package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/M1estere/To-Do-API/internal/adapter/http/dto"
	"github.com/M1estere/To-Do-API/internal/core/domain"
)

var registerFieldNames sync.Once

// BuildCreateTaskInput decodes and binds a create payload. Every failure is a *domain.ValidationError.
func BuildCreateTaskInput(body []byte) (domain.CreateTaskInput, error) {
	if _, err := parseObject(body); err != nil {
		return domain.CreateTaskInput{}, err
	}

	var req dto.CreateTaskRequest
	if err := bindBody(body, &req); err != nil {
		return domain.CreateTaskInput{}, err
	}

	return domain.CreateTaskInput{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      toStatus(req.Status),
	}, nil
}

// BuildUpdateTaskInput decodes a partial update, keeping track of which keys were sent
// and which were sent as null.
func BuildUpdateTaskInput(body []byte) (domain.UpdateTaskInput, error) {
	raw, err := parseObject(body)
	if err != nil {
		return domain.UpdateTaskInput{}, err
	}

	var req dto.UpdateTaskRequest
	if err := bindBody(body, &req); err != nil {
		return domain.UpdateTaskInput{}, err
	}

	if hasJSONField(raw, "title") && req.Title == nil {
		return domain.UpdateTaskInput{}, domain.NewValidationError(domain.Violation{Field: "title", Rule: domain.RuleRequired})
	}

	var title *string
	if req.Title != nil {
		value := strings.TrimSpace(*req.Title)
		title = &value
	}

	return domain.UpdateTaskInput{
		Title:          title,
		Description:    req.Description,
		DescriptionSet: hasJSONField(raw, "description"),
		Status:         toStatus(req.Status),
		StatusSet:      hasJSONField(raw, "status"),
	}, nil
}

// parseObject accepts an empty body as {}. Anything that is not a JSON object is rejected.
func parseObject(body []byte) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if len(bytes.TrimSpace(body)) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(body, &raw); err != nil || raw == nil {
		return nil, domain.NewValidationError()
	}
	return raw, nil
}

func bindBody(body []byte, obj any) error {
	registerFieldNames.Do(useJSONFieldNames)

	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	err := binding.JSON.BindBody(body, obj)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fromValidatorErrors(validationErrs)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError(domain.Violation{Field: typeErr.Field, Rule: domain.RuleString})
	}

	return domain.NewValidationError()
}

func fromValidatorErrors(errs validator.ValidationErrors) *domain.ValidationError {
	violations := make([]domain.Violation, 0, len(errs))
	for _, fe := range errs {
		violation := domain.Violation{Field: fe.Field(), Param: fe.Param()}
		switch fe.Tag() {
		case "required":
			violation.Rule = domain.RuleRequired
		case "max":
			violation.Rule = domain.RuleMax
		case "oneof":
			violation.Rule = domain.RuleOneOf
			violation.Param = ""
		default:
			violation.Rule = domain.RuleInvalid
		}
		violations = append(violations, violation)
	}
	return domain.NewValidationError(violations...)
}

// useJSONFieldNames makes validator report "title" instead of "Title".
func useJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func toStatus(value *string) *domain.TaskStatus {
	if value == nil {
		return nil
	}
	status := domain.TaskStatus(*value)
	return &status
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}
