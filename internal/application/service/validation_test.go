package service

import (
	"strings"
	"testing"

	"hackportal/pkg/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidateAnswer(t *testing.T) {
	tests := []struct {
		name    string
		q       model.Question
		answer  string
		wantErr bool
	}{
		{
			"required empty",
			model.Question{Field: "name", Type: model.QuestionString, Validation: model.QuestionValidation{Required: true}},
			"", true,
		},
		{
			"optional empty",
			model.Question{Field: "nickname", Type: model.QuestionString},
			"", false,
		},
		{
			"number in range",
			model.Question{Field: "age", Type: model.QuestionNumber, Validation: model.QuestionValidation{MinValue: floatPtr(13), MaxValue: floatPtr(120)}},
			"19", false,
		},
		{
			"number below minimum",
			model.Question{Field: "age", Type: model.QuestionNumber, Validation: model.QuestionValidation{MinValue: floatPtr(13)}},
			"9", true,
		},
		{
			"not a number",
			model.Question{Field: "age", Type: model.QuestionNumber},
			"nineteen", true,
		},
		{
			"string too short",
			model.Question{Field: "essay", Type: model.QuestionTextarea, Validation: model.QuestionValidation{MinLength: 10}},
			"short", true,
		},
		{
			"string too long",
			model.Question{Field: "essay", Type: model.QuestionTextarea, Validation: model.QuestionValidation{MaxLength: 5}},
			"much too long", true,
		},
		{
			"pattern mismatch",
			model.Question{Field: "phone", Type: model.QuestionString, Validation: model.QuestionValidation{Pattern: `^\+?[0-9]+$`}},
			"not-a-phone", true,
		},
		{
			"pattern match",
			model.Question{Field: "phone", Type: model.QuestionString, Validation: model.QuestionValidation{Pattern: `^\+?[0-9]+$`}},
			"+628123456789", false,
		},
		{
			"calendar date",
			model.Question{Field: "dob", Type: model.QuestionDate},
			"2008-03-14", false,
		},
		{
			"epoch date",
			model.Question{Field: "dob", Type: model.QuestionDate},
			"1205452800", false,
		},
		{
			"invalid date",
			model.Question{Field: "dob", Type: model.QuestionDate},
			"March 14th", true,
		},
		{
			"dropdown valid option",
			model.Question{Field: "shirt", Type: model.QuestionDropdown, Options: []string{"S", "M", "L"}},
			"M", false,
		},
		{
			"dropdown unknown option",
			model.Question{Field: "shirt", Type: model.QuestionDropdown, Options: []string{"S", "M", "L"}},
			"XXL", true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAnswer(&tt.q, tt.answer)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateAnswer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	q := model.Question{
		Field: "resume",
		Type:  model.QuestionFile,
		Validation: model.QuestionValidation{
			AllowedTypes: "application/pdf, image/png",
			MaxSizeMB:    1,
		},
	}

	if err := validateFile(&q, &model.FileAnswer{Filename: "cv.pdf", MimeType: "application/pdf"}, 512); err != nil {
		t.Fatalf("validateFile: %v", err)
	}

	err := validateFile(&q, &model.FileAnswer{Filename: "cv.exe", MimeType: "application/octet-stream"}, 512)
	if err == nil || !strings.Contains(err.Error(), "not accepted") {
		t.Fatalf("wrong mime type accepted: %v", err)
	}

	err = validateFile(&q, &model.FileAnswer{Filename: "cv.pdf", MimeType: "application/pdf"}, 2*1024*1024)
	if err == nil || !strings.Contains(err.Error(), "limit") {
		t.Fatalf("oversized file accepted: %v", err)
	}

	if err := validateFile(&q, &model.FileAnswer{MimeType: "application/pdf"}, 512); err == nil {
		t.Fatal("missing filename accepted")
	}
}
