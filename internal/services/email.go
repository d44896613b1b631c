package services

import (
	"context"
	"fmt"
	"log"

	"campusevents/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendEventApproved sends the approval notification using the "event_approved" template.
func (s *emailService) SendEventApproved(ctx context.Context, data *domain.EventDecisionEmailData) error {
	return s.send("event_approved", data)
}

// SendEventRejected sends the rejection notification using the "event_rejected" template.
func (s *emailService) SendEventRejected(ctx context.Context, data *domain.EventDecisionEmailData) error {
	return s.send("event_rejected", data)
}

func (s *emailService) send(templateName string, data *domain.EventDecisionEmailData) error {
	if data == nil {
		return fmt.Errorf("%s email data is nil", templateName)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(templateName, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", templateName, err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", templateName, err)
	}
	log.Printf("[EMAIL] %s notification sent to %s", templateName, data.Email)
	return nil
}
