package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventDecisionEmailData holds data for approval decision emails sent to the
// host organization's board members.
type EventDecisionEmailData struct {
	Email            string
	EventTitle       string
	OrganizationName string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventApproved(ctx context.Context, data *EventDecisionEmailData) error
	SendEventRejected(ctx context.Context, data *EventDecisionEmailData) error
}
