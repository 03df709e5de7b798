package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hackportal/pkg/model"
)

// validateAnswer checks one submitted answer against its question. File
// questions are validated separately because their payload is not a plain
// string.
func validateAnswer(q *model.Question, answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		if q.Validation.Required {
			return fmt.Errorf("%s: an answer is required", q.Field)
		}
		return nil
	}

	switch q.Type {
	case model.QuestionNumber:
		return validateNumber(q, answer)
	case model.QuestionString, model.QuestionTextarea:
		return validateText(q, answer)
	case model.QuestionDate:
		return validateDate(q, answer)
	case model.QuestionDropdown:
		return validateDropdown(q, answer)
	case model.QuestionFile:
		// File answers hold the object key once uploaded; nothing further
		// to check here.
		return nil
	default:
		return fmt.Errorf("%s: unknown question type %q", q.Field, q.Type)
	}
}

func validateNumber(q *model.Question, answer string) error {
	v, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		return fmt.Errorf("%s: must be a number", q.Field)
	}
	if q.Validation.MinValue != nil && v < *q.Validation.MinValue {
		return fmt.Errorf("%s: must be at least %v", q.Field, *q.Validation.MinValue)
	}
	if q.Validation.MaxValue != nil && v > *q.Validation.MaxValue {
		return fmt.Errorf("%s: must be at most %v", q.Field, *q.Validation.MaxValue)
	}
	return nil
}

func validateText(q *model.Question, answer string) error {
	n := len([]rune(answer))
	if q.Validation.MinLength > 0 && n < q.Validation.MinLength {
		return fmt.Errorf("%s: must be at least %d characters", q.Field, q.Validation.MinLength)
	}
	if q.Validation.MaxLength > 0 && n > q.Validation.MaxLength {
		return fmt.Errorf("%s: must be at most %d characters", q.Field, q.Validation.MaxLength)
	}
	if q.Validation.Pattern != "" {
		re, err := regexp.Compile(q.Validation.Pattern)
		if err != nil {
			return fmt.Errorf("%s: question has an invalid pattern", q.Field)
		}
		if !re.MatchString(answer) {
			return fmt.Errorf("%s: does not match the expected format", q.Field)
		}
	}
	return nil
}

// validateDate accepts a calendar date or an epoch-second timestamp.
func validateDate(q *model.Question, answer string) error {
	if _, err := time.Parse("2006-01-02", answer); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, answer); err == nil {
		return nil
	}
	if _, err := strconv.ParseInt(answer, 10, 64); err == nil {
		return nil
	}
	return fmt.Errorf("%s: must be a valid date", q.Field)
}

func validateDropdown(q *model.Question, answer string) error {
	for _, opt := range q.Options {
		if answer == opt {
			return nil
		}
	}
	return fmt.Errorf("%s: must be one of the listed options", q.Field)
}

// validateFile checks an uploaded file against a file question's
// constraints before it goes to storage.
func validateFile(q *model.Question, file *model.FileAnswer, size int) error {
	if file.Filename == "" {
		return fmt.Errorf("%s: filename is required", q.Field)
	}
	if q.Validation.MaxSizeMB > 0 && size > q.Validation.MaxSizeMB*1024*1024 {
		return fmt.Errorf("%s: file exceeds the %d MB limit", q.Field, q.Validation.MaxSizeMB)
	}
	if q.Validation.AllowedTypes != "" {
		allowed := false
		for _, t := range strings.Split(q.Validation.AllowedTypes, ",") {
			if strings.TrimSpace(t) == file.MimeType {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("%s: file type %s is not accepted", q.Field, file.MimeType)
		}
	}
	return nil
}
