// Package mail sends invitation notification email over SMTP.
package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/jordan-wright/email"

	"github.com/billetera/billetera/internal/config"
	"github.com/billetera/billetera/internal/models"
)

// Sender notifies recipients about shared-expense invitations.
// Sends are best effort: the invitation workflow never fails because mail
// could not be delivered, and the UI polls the pending list regardless.
type Sender interface {
	SendInvitation(inv *models.SharedExpenseInvitation)
}

// SMTPSender sends mail through a configured SMTP relay.
type SMTPSender struct {
	cfg *config.Config
}

// NewSender returns an SMTP-backed sender, or a no-op sender when SMTP is
// not configured.
func NewSender(cfg *config.Config) Sender {
	if cfg.SMTPHost == "" {
		slog.Info("SMTP not configured, invitation mail disabled")
		return NopSender{}
	}
	return &SMTPSender{cfg: cfg}
}

// SendInvitation emails the recipient that an invitation is waiting.
func (s *SMTPSender) SendInvitation(inv *models.SharedExpenseInvitation) {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{inv.RecipientEmail}
	e.Subject = "Shared expense invitation"

	body := fmt.Sprintf(
		"%s wants to share an expense with you.\n\n"+
			"%s — %s (%s, paid by %s)\n\n"+
			"Sign in to Billetera to accept or decline. The invitation "+
			"expires 7 days after it was sent.\n",
		inv.SenderEmail,
		inv.ExpenseData.Name, inv.ExpenseData.Amount,
		inv.ExpenseData.Category, inv.ExpenseData.PaymentMethod,
	)
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		slog.Error("Failed to send invitation mail",
			"recipient", inv.RecipientEmail,
			"invitation_id", inv.ID,
			"error", err,
		)
		return
	}

	slog.Info("Invitation mail sent", "recipient", inv.RecipientEmail, "invitation_id", inv.ID)
}

// NopSender drops all mail. Used when SMTP is not configured and in tests.
type NopSender struct{}

// SendInvitation does nothing.
func (NopSender) SendInvitation(*models.SharedExpenseInvitation) {}
