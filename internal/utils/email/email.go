package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Dan9191/card-tracker/internal/config"
	"github.com/Dan9191/card-tracker/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

// SendPaymentReminder sends one digest covering every card that needs attention
func (s *Sender) SendPaymentReminder(to, username string, reminders []models.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = Subject(reminders)
	e.Text = []byte(Body(username, reminders))

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

// Subject picks the reminder subject line; overdue cards take priority
func Subject(reminders []models.Reminder) string {
	for _, r := range reminders {
		if r.Overdue {
			return "Overdue Card Payment Notification"
		}
	}
	return "Upcoming Card Payment Reminder"
}

// Body renders the plain-text reminder digest
func Body(username string, reminders []models.Reminder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", username)

	for _, r := range reminders {
		switch {
		case r.Overdue:
			fmt.Fprintf(&b, "- %s: payment was due on %s and is now overdue. Minimum payment %s, balance %s.\n",
				r.CardLabel, r.DueDate, r.MinimumPayment, r.CurrentBalance)
		case r.DaysUntilDue == 0:
			fmt.Fprintf(&b, "- %s: payment is due today. Minimum payment %s, balance %s.\n",
				r.CardLabel, r.MinimumPayment, r.CurrentBalance)
		default:
			fmt.Fprintf(&b, "- %s: payment is due on %s (in %d days). Minimum payment %s, balance %s.\n",
				r.CardLabel, r.DueDate, r.DaysUntilDue, r.MinimumPayment, r.CurrentBalance)
		}
	}

	b.WriteString("\nPlease make your payments on time to avoid late fees and interest.\n")
	b.WriteString("\nBest regards,\nCard Tracker")
	return b.String()
}
