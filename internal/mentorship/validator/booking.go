package validator

import (
	"errors"
	"fmt"
	"strings"

	"hackportal/pkg/logger"
	"hackportal/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateRequests checks every request in a multi-slot booking call and
// rejects duplicate slot ids within the batch.
func (v *BookingValidator) ValidateRequests(reqs []model.BookingRequest) error {
	var all ValidationErrors
	seen := make(map[string]struct{}, len(reqs))

	for i, req := range reqs {
		if err := v.validate.Struct(req); err != nil {
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				all = append(all, v.translate(fmt.Sprintf("mentorships[%d].", i), validationErrs)...)
				continue
			}
			return err
		}

		if _, dup := seen[req.SlotID]; dup {
			all = append(all, ValidationError{
				Field:   fmt.Sprintf("mentorships[%d].slotId", i),
				Message: "duplicate slot in request",
			})
		}
		seen[req.SlotID] = struct{}{}
	}

	if len(all) > 0 {
		return all
	}
	return nil
}

func (v *BookingValidator) ValidateAnnotations(a *model.SlotAnnotations) error {
	if a.Empty() {
		return ValidationErrors{ValidationError{
			Field:   "body",
			Message: "at least one of mentorNotes, mentorMarkAsDone, mentorMarkAsAfk is required",
		}}
	}
	if err := v.validate.Struct(a); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translate("", validationErrs)
		}
		return err
	}
	return nil
}

func (v *BookingValidator) translate(prefix string, errs validator.ValidationErrors) ValidationErrors {
	var out ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "max":
			message = fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
		}

		out = append(out, ValidationError{
			Field:   prefix + err.Field(),
			Message: message,
		})
	}

	return out
}
