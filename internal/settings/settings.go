// Package settings holds the user's timesheet preferences and persists them
// through a pluggable Backend.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/timesheet/internal/pagination"
	"github.com/timesheet/internal/work"
)

// DefaultSiteName is the site printed when none has been configured.
const DefaultSiteName = "Cygnet Churchill"

// Settings are the user preferences that shape the generated document.
type Settings struct {
	Name                  string `yaml:"name" json:"name"`
	Position              string `yaml:"position" json:"position"`
	SiteName              string `yaml:"siteName" json:"siteName"`
	PageBreakDay          int    `yaml:"pageBreakDay" json:"pageBreakDay" validate:"min=14,max=17"`
	PayrollDeadlineOffset int    `yaml:"payrollDeadlineOffset" json:"payrollDeadlineOffset" validate:"min=0"`
	UseCygnetLogo         bool   `yaml:"useCygnetLogo" json:"useCygnetLogo"`
}

// Defaults returns the settings used before the user changes anything.
func Defaults() Settings {
	return Settings{
		SiteName:              DefaultSiteName,
		PageBreakDay:          pagination.DefaultBreakDay,
		PayrollDeadlineOffset: work.DefaultDeadlineOffset,
	}
}

// Backend loads and saves Settings. Load returns Defaults when nothing has
// been saved yet.
type Backend interface {
	Load() (Settings, error)
	Save(Settings) error
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid settings")

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("settings validation error: %s - %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks s against the allowed ranges.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &ValidationError{Field: fe.Field(), Message: describe(fe)}
}

// Repair returns s with every field that fails validation reset to its
// default. Valid fields are kept as they are.
func (s Settings) Repair() Settings {
	var verrs validator.ValidationErrors
	if !errors.As(validate.Struct(s), &verrs) {
		return s
	}
	d := Defaults()
	for _, fe := range verrs {
		switch fe.Field() {
		case "PageBreakDay":
			s.PageBreakDay = d.PageBreakDay
		case "PayrollDeadlineOffset":
			s.PayrollDeadlineOffset = d.PayrollDeadlineOffset
		}
	}
	return s
}

func describe(fe validator.FieldError) string {
	switch fe.Field() {
	case "PageBreakDay":
		days := make([]string, 0, 4)
		for _, d := range pagination.BreakDays() {
			days = append(days, fmt.Sprint(d))
		}
		return fmt.Sprintf("must be one of %s, got %v", strings.Join(days, ", "), fe.Value())
	case "PayrollDeadlineOffset":
		return fmt.Sprintf("must not be negative, got %v", fe.Value())
	}
	return fmt.Sprintf("failed %q (%s) with value %v", fe.Tag(), fe.Param(), fe.Value())
}
