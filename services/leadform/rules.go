// Package leadform holds the lead form rule set and the client that drives a
// submission attempt against the relay endpoint. The same rule set is run by
// the server before relaying, so both sides always agree on what is valid.
package leadform

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"studio_landing_go/models"
	"studio_landing_go/services/i18n"

	"github.com/go-playground/validator/v10"
)

const (
	MaxNameLength      = 30
	MaxMessageLength   = 300
	MaxMessageSentence = 2
)

// phonePattern accepts Russian numbers: optional +7/8 prefix, a three digit
// code not starting with 0, then 3+2+2 digits with optional separators.
var phonePattern = regexp.MustCompile(`^(?:\+7|8)?\s?\(?[1-9]\d{2}\)?\s?\d{3}-?\d{2}-?\d{2}$`)

// FieldErrors maps a form field name to a human-readable message
type FieldErrors map[string]string

// Add records msg for field unless the field already has a message
func (fe FieldErrors) Add(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

// Result is the outcome of Validate. Lead is set only when Errors is empty.
type Result struct {
	Lead   *models.LeadSubmission
	Errors FieldErrors
}

// Valid reports whether the draft passed every rule
func (r Result) Valid() bool {
	return len(r.Errors) == 0 && r.Lead != nil
}

// leadFields mirrors LeadDraft with validation tags
type leadFields struct {
	Name        string `json:"name" validate:"required,max=30"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,ruphone"`
	MessageText string `json:"messageText" validate:"max=300,maxsentences=2"`
}

type subscriptionFields struct {
	Email string `json:"email" validate:"required,email"`
}

// messageKeys maps "field.tag" to a translation key
var messageKeys = map[string]string{
	"name.required":            "lead.name_required",
	"name.max":                 "lead.name_too_long",
	"email.required":           "lead.email_required",
	"email.email":              "lead.email_invalid",
	"phone.ruphone":            "lead.phone_invalid",
	"messageText.max":          "lead.message_too_long",
	"messageText.maxsentences": "lead.message_too_many_sentences",
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func engine() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// report JSON names so errors line up with the wire format
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("ruphone", func(fl validator.FieldLevel) bool {
			return IsValidPhone(fl.Field().String())
		})
		_ = v.RegisterValidation("maxsentences", func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return CountSentences(fl.Field().String()) <= limit
		})
		validate = v
	})
	return validate
}

// IsValidPhone reports whether phone matches the accepted Russian formats
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// CountSentences counts the non-empty trimmed segments of text split on
// '.', '!' and '?'.
func CountSentences(text string) int {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	n := 0
	for _, s := range segments {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}

// Normalize trims every field. Text is otherwise kept exactly as typed.
func Normalize(d models.LeadDraft) models.LeadDraft {
	return models.LeadDraft{
		Name:        strings.TrimSpace(d.Name),
		Email:       strings.TrimSpace(d.Email),
		Phone:       strings.TrimSpace(d.Phone),
		MessageText: strings.TrimSpace(d.MessageText),
	}
}

// Validate applies the lead rules to draft and returns either a submission
// candidate or the messages for every failing field, in lang.
//
// Per-field rules run first. The email-or-phone rule runs after them and
// puts the same message on both fields.
func Validate(lang string, draft models.LeadDraft) Result {
	d := Normalize(draft)
	errs := FieldErrors{}

	fields := leadFields{
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		MessageText: d.MessageText,
	}
	collect(lang, engine().Struct(fields), errs)

	if d.Email == "" && d.Phone == "" {
		msg := i18n.Translate(lang, "lead.contact_required")
		errs.Add(models.FieldEmail, msg)
		errs.Add(models.FieldPhone, msg)
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	return Result{
		Lead: &models.LeadSubmission{
			Name:        d.Name,
			Email:       d.Email,
			Phone:       d.Phone,
			MessageText: d.MessageText,
		},
		Errors: errs,
	}
}

// ValidateSubscription checks the email of the subscribe form. It returns
// the trimmed email and nil, or the field messages.
func ValidateSubscription(lang, email string) (string, FieldErrors) {
	email = strings.TrimSpace(email)
	errs := FieldErrors{}
	collect(lang, engine().Struct(subscriptionFields{Email: email}), errs)
	if len(errs) > 0 {
		return "", errs
	}
	return email, nil
}

// collect turns validator errors into translated field messages
func collect(lang string, err error, errs FieldErrors) {
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.Add("_", err.Error())
		return
	}
	for _, fe := range verrs {
		key, ok := messageKeys[fe.Field()+"."+fe.Tag()]
		if !ok {
			key = "relay.invalid_form"
		}
		errs.Add(fe.Field(), i18n.Translate(lang, key))
	}
}
