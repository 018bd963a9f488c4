// Package mailer sends the product's transactional mail: verification
// tokens, password resets, temporary passwords, and due-task reminders.
package mailer

import (
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	contracts "github.com/Yahya-git/To-Do-List-MS/contracts/mq"
	"github.com/Yahya-git/To-Do-List-MS/pkg/config"
	"github.com/Yahya-git/To-Do-List-MS/pkg/metrics"
)

// Sender delivers a single message. Tests swap in a recorder.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	cfg config.SMTPConfig
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

type Mailer struct {
	sender     Sender
	gatewayURL string
	logger     *zap.Logger
}

func NewMailer(sender Sender, gatewayURL string, logger *zap.Logger) *Mailer {
	return &Mailer{sender: sender, gatewayURL: gatewayURL, logger: logger}
}

func (m *Mailer) send(kind, to, subject, body string) error {
	if err := m.sender.Send(to, subject, body); err != nil {
		metrics.IncrementMailSent(kind, "failed")
		m.logger.Error("Failed to send mail",
			zap.String("kind", kind),
			zap.String("to", to),
			zap.Error(err),
		)
		return err
	}
	metrics.IncrementMailSent(kind, "success")
	m.logger.Info("Mail sent", zap.String("kind", kind), zap.String("to", to))
	return nil
}

func (m *Mailer) SendVerification(to string, token int) error {
	body := fmt.Sprintf(
		"Your verification token is %d.\n\nVerify your email: %s/verify-email?token=%d",
		token, m.gatewayURL, token,
	)
	return m.send(contracts.MailKindVerification, to, "Verify your email", body)
}

func (m *Mailer) SendPasswordReset(to string, userID, token int) error {
	body := fmt.Sprintf(
		"Your password reset token is %d.\n\nReset your password: %s/users/%d/reset-password?token=%d",
		token, m.gatewayURL, userID, token,
	)
	return m.send(contracts.MailKindResetPassword, to, "Reset your password", body)
}

func (m *Mailer) SendTemporaryPassword(to, tempPassword string) error {
	body := "Your temporary password is: " + tempPassword +
		"\n\nLog in with it and change your password right away."
	return m.send(contracts.MailKindResetPassword, to, "Your temporary password", body)
}

func (m *Mailer) SendReminder(to string, tasks []contracts.ReminderTask) error {
	var b strings.Builder
	b.WriteString("The following tasks are due today:\n\n")
	for _, t := range tasks {
		b.WriteString("- " + t.Title)
		if t.Description != "" {
			b.WriteString(": " + t.Description)
		}
		b.WriteString(" (due " + t.DueDate.Format("2006-01-02 15:04") + ")\n")
	}
	subject := "You have " + strconv.Itoa(len(tasks)) + " task(s) due today"
	return m.send(contracts.MailKindReminder, to, subject, b.String())
}
