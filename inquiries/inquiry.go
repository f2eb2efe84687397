// Package inquiries stores messages submitted through the contact form.
package inquiries

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Field limits.
const (
	MaxNameLen    = 200
	MaxCompanyLen = 200
	MinMessageLen = 10
	MaxMessageLen = 5000
)

// Inquiry is a single contact form submission.
type Inquiry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Message   string    `json:"message"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"created_at"`
}

// New builds an Inquiry from raw form values with a fresh ID and timestamp.
func New(name, email, company, message, ip string) Inquiry {
	return Inquiry{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Company:   strings.TrimSpace(company),
		Message:   strings.TrimSpace(message),
		IP:        ip,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the user-supplied fields.
func (i *Inquiry) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.Name,
			validation.Required.Error("Please enter your name."),
			validation.RuneLength(0, MaxNameLen).Error("Name is too long."),
		),
		validation.Field(&i.Email,
			validation.Required.Error("Please enter your email address."),
			is.Email.Error("Please enter a valid email address."),
		),
		validation.Field(&i.Company,
			validation.RuneLength(0, MaxCompanyLen).Error("Company name is too long."),
		),
		validation.Field(&i.Message,
			validation.Required.Error("Please tell us how we can help."),
			validation.RuneLength(MinMessageLen, MaxMessageLen).Error("Message must be between 10 and 5000 characters."),
		),
	)
}

// FieldErrors flattens a validation error into field name to message. It
// returns nil when err carries no per-field errors.
func FieldErrors(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for field, e := range verrs {
		if e != nil {
			out[field] = e.Error()
		}
	}
	return out
}
