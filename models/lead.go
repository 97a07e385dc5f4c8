package models

// Form field names, shared by JSON bodies, form posts and error maps
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldMessageText    = "messageText"
	FieldRecaptchaToken = "recaptchaToken"
)

// RecaptchaActionSubmitForm is the reCAPTCHA v3 action used by the lead form
const RecaptchaActionSubmitForm = "submit_form"

// RecaptchaActionSubscribe is the reCAPTCHA v3 action used by the subscribe form
const RecaptchaActionSubscribe = "subscribe"

// LeadDraft holds the raw values typed by a visitor, before validation
type LeadDraft struct {
	Name        string `json:"name" form:"name"`
	Email       string `json:"email" form:"email"`
	Phone       string `json:"phone" form:"phone"`
	MessageText string `json:"messageText" form:"messageText"`
}

// LeadSubmission is a draft that passed validation. It lives for one
// submission attempt and is never stored.
type LeadSubmission struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	MessageText string `json:"messageText,omitempty"`
}

// HasEmail reports whether the visitor left an email address
func (s LeadSubmission) HasEmail() bool {
	return s.Email != ""
}

// HasPhone reports whether the visitor left a phone number
func (s LeadSubmission) HasPhone() bool {
	return s.Phone != ""
}

// LeadPayload is the JSON body posted to the relay endpoint
type LeadPayload struct {
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	MessageText    string `json:"messageText,omitempty"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// NewLeadPayload attaches a bot-check token to a validated submission
func NewLeadPayload(s LeadSubmission, token string) LeadPayload {
	return LeadPayload{
		Name:           s.Name,
		Email:          s.Email,
		Phone:          s.Phone,
		MessageText:    s.MessageText,
		RecaptchaToken: token,
	}
}

// Draft returns the payload's form fields without the token
func (p LeadPayload) Draft() LeadDraft {
	return LeadDraft{
		Name:        p.Name,
		Email:       p.Email,
		Phone:       p.Phone,
		MessageText: p.MessageText,
	}
}

// SubscriptionPayload is the JSON body posted to the subscribe endpoint
type SubscriptionPayload struct {
	Email          string `json:"email" form:"email"`
	RecaptchaToken string `json:"recaptchaToken" form:"recaptchaToken"`
}

// RelayResponse is returned by the relay endpoints. Exactly one of
// Success or Error is set.
type RelayResponse struct {
	Success string            `json:"success,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
