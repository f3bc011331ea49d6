package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// AnswerValue is the tagged union behind Answer.Value: exactly one of the
// fields is set, matching the question type. Stored as a JSON column.
type AnswerValue struct {
	Text    *string  `json:"text,omitempty"`
	Number  *float64 `json:"number,omitempty"`
	Option  *string  `json:"option,omitempty"`
	Options []string `json:"options,omitempty"`
}

func (v AnswerValue) Value() (driver.Value, error) {
	return json.Marshal(v)
}

func (v *AnswerValue) Scan(value interface{}) error {
	if value == nil {
		*v = AnswerValue{}
		return nil
	}

	var bytes []byte
	switch data := value.(type) {
	case []byte:
		bytes = data
	case string:
		bytes = []byte(data)
	default:
		return errors.New("unsupported column type for AnswerValue")
	}

	return json.Unmarshal(bytes, v)
}

// TextValue builds a text variant.
func TextValue(s string) AnswerValue {
	return AnswerValue{Text: &s}
}

// NumberValue builds a numeric variant.
func NumberValue(n float64) AnswerValue {
	return AnswerValue{Number: &n}
}

// OptionValue builds a single-choice variant holding an option id.
func OptionValue(optionID string) AnswerValue {
	return AnswerValue{Option: &optionID}
}

// OptionsValue builds a multi-choice variant holding option ids.
func OptionsValue(optionIDs []string) AnswerValue {
	return AnswerValue{Options: optionIDs}
}

// IsEmpty reports whether the value counts as unanswered for the
// required-question gate: empty string, no number, no selection.
func (v AnswerValue) IsEmpty() bool {
	if v.Text != nil {
		return strings.TrimSpace(*v.Text) == ""
	}
	if v.Number != nil {
		return false
	}
	if v.Option != nil {
		return *v.Option == ""
	}
	return len(v.Options) == 0
}

// MatchesType verifies the variant agrees with the question type.
func (v AnswerValue) MatchesType(t QuestionType) error {
	set := 0
	if v.Text != nil {
		set++
	}
	if v.Number != nil {
		set++
	}
	if v.Option != nil {
		set++
	}
	if len(v.Options) > 0 {
		set++
	}
	if set > 1 {
		return errors.New("answer value must set exactly one variant")
	}
	if set == 0 {
		// Empty values are allowed on drafts for any type.
		return nil
	}

	switch t {
	case QuestionText, QuestionTextarea:
		if v.Text == nil {
			return fmt.Errorf("question type %s expects a text value", t)
		}
	case QuestionNumber:
		if v.Number == nil {
			return fmt.Errorf("question type %s expects a numeric value", t)
		}
	case QuestionSelect, QuestionRadio:
		if v.Option == nil {
			return fmt.Errorf("question type %s expects a single option id", t)
		}
	case QuestionCheckbox:
		if len(v.Options) == 0 {
			return fmt.Errorf("question type %s expects option ids", t)
		}
	default:
		return fmt.Errorf("unknown question type %q", t)
	}
	return nil
}

// Display renders the value for analytics grouping.
func (v AnswerValue) Display() string {
	switch {
	case v.Text != nil:
		return *v.Text
	case v.Number != nil:
		return fmt.Sprintf("%g", *v.Number)
	case v.Option != nil:
		return *v.Option
	case len(v.Options) > 0:
		return strings.Join(v.Options, ",")
	}
	return ""
}
