package notice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Trimmed returns a copy of the request with surrounding whitespace removed
// from the text fields. An empty priority becomes PriorityNormal.
func (r CreateMessageRequest) Trimmed() CreateMessageRequest {
	out := r
	out.Title = strings.TrimSpace(r.Title)
	out.Content = strings.TrimSpace(r.Content)
	out.Author = strings.TrimSpace(r.Author)
	if out.Priority == "" {
		out.Priority = PriorityNormal
	}
	return out
}

// Validate checks the required-field rules on the trimmed request:
// title, content and author must be non-empty and priority must be one of
// the four enumerated values.
func (r CreateMessageRequest) Validate() error {
	trimmed := r.Trimmed()
	if err := validate.Struct(&trimmed); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			names := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				names = append(names, strings.ToLower(fe.Field()))
			}
			return fmt.Errorf("invalid message: %s", strings.Join(names, ", "))
		}
		return fmt.Errorf("invalid message: %w", err)
	}
	return nil
}

// MissingFields lists the required text fields that are blank after trimming.
func (r CreateMessageRequest) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(r.Content) == "" {
		missing = append(missing, "content")
	}
	if strings.TrimSpace(r.Author) == "" {
		missing = append(missing, "author")
	}
	return missing
}
