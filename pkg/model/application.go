package model

// Application-form states, in the order hackers walk through them.
type ApplicationState string

const (
	StateProfile            ApplicationState = "PROFILE"
	StateInquiry            ApplicationState = "INQUIRY"
	StateAdditionalQuestion ApplicationState = "ADDITIONAL_QUESTION"
	StateSubmitted          ApplicationState = "SUBMITTED"
)

func (s ApplicationState) Valid() bool {
	switch s {
	case StateProfile, StateInquiry, StateAdditionalQuestion, StateSubmitted:
		return true
	}
	return false
}

type QuestionType string

const (
	QuestionNumber   QuestionType = "number"
	QuestionString   QuestionType = "string"
	QuestionTextarea QuestionType = "textarea"
	QuestionDate     QuestionType = "datetime"
	QuestionDropdown QuestionType = "dropdown"
	QuestionFile     QuestionType = "file"
)

// QuestionValidation is the union of per-type constraints. Which fields
// apply depends on the question type.
type QuestionValidation struct {
	Required  bool     `json:"required" bson:"required"`
	MinLength int      `json:"minLength,omitempty" bson:"min_length,omitempty"`
	MaxLength int      `json:"maxLength,omitempty" bson:"max_length,omitempty"`
	MinValue  *float64 `json:"minValue,omitempty" bson:"min_value,omitempty"`
	MaxValue  *float64 `json:"maxValue,omitempty" bson:"max_value,omitempty"`
	Pattern   string   `json:"pattern,omitempty" bson:"pattern,omitempty"`

	// File questions only.
	AllowedTypes string `json:"allowedTypes,omitempty" bson:"allowed_types,omitempty"` // comma-separated MIME types
	MaxSizeMB    int    `json:"maxSize,omitempty" bson:"max_size,omitempty"`
}

// Question is one form field, keyed by Field in submitted answers and
// shown within the section named by State.
type Question struct {
	ID         string             `json:"id,omitempty" bson:"_id,omitempty"`
	Order      int                `json:"order" bson:"order"`
	State      ApplicationState   `json:"state" bson:"state"`
	Field      string             `json:"field" bson:"field"`
	Text       string             `json:"text" bson:"text"`
	Type       QuestionType       `json:"type" bson:"type"`
	Validation QuestionValidation `json:"validation" bson:"validation"`
	Options    []string           `json:"options,omitempty" bson:"options,omitempty"`
}

// Application is a hacker's form progress, one document per user.
type Application struct {
	ID        string            `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string            `json:"userId" bson:"user_id"`
	State     ApplicationState  `json:"state" bson:"state"`
	Answers   map[string]string `json:"answers" bson:"answers"`
	UpdatedAt int64             `json:"updatedAt" bson:"updated_at"`
}

// FileAnswer is an uploaded answer to a file question. Content travels
// base64-encoded in the request body.
type FileAnswer struct {
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Content  string `json:"content"`
}
