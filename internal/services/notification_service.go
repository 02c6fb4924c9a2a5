// internal/services/notification_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/the-exchanger/exchanger-backend/internal/config"
	"github.com/the-exchanger/exchanger-backend/internal/models"
)

// NotificationService mails offer events to the affected participant. All
// sends are best effort; callers log failures and move on.
type NotificationService struct {
	users UserStore
	cfg   *config.Config
}

func NewNotificationService(users UserStore, cfg *config.Config) *NotificationService {
	return &NotificationService{users: users, cfg: cfg}
}

const offerReceivedTemplate = `
<p>Hi {{.Name}},</p>
<p>{{.ProposerName}} made a trade offer on your listing <strong>{{.ListingTitle}}</strong>.</p>
<p><a href="{{.OfferURL}}">View the offer</a></p>
`

const offerAcceptedTemplate = `
<p>Hi {{.Name}},</p>
<p>Your trade offer was accepted. The listings involved are reserved until the trade is finalized.</p>
<p><a href="{{.OfferURL}}">Open the thread</a></p>
`

const offerDeclinedTemplate = `
<p>Hi {{.Name}},</p>
<p>Your trade offer was declined.</p>
<p><a href="{{.OfferURL}}">View details</a></p>
`

const tradeCompletedTemplate = `
<p>Hi {{.Name}},</p>
<p>Your trade was marked as completed. Enjoy your new items!</p>
`

func (s *NotificationService) SendOfferReceived(ctx context.Context, offer *models.TradeOffer, listing *models.Listing) error {
	owner, err := s.users.FindByID(ctx, offer.ToUserID)
	if err != nil {
		return err
	}
	proposer, err := s.users.FindByID(ctx, offer.FromUserID)
	if err != nil {
		return err
	}

	body, err := s.render(offerReceivedTemplate, map[string]interface{}{
		"Name":         owner.Name,
		"ProposerName": proposer.Name,
		"ListingTitle": listing.Title,
		"OfferURL":     s.offerURL(offer),
	})
	if err != nil {
		return err
	}

	return s.send(owner.Email, "New trade offer on "+listing.Title, body)
}

func (s *NotificationService) SendOfferAccepted(ctx context.Context, offer *models.TradeOffer) error {
	return s.sendToProposer(ctx, offer, "Your trade offer was accepted", offerAcceptedTemplate)
}

func (s *NotificationService) SendOfferDeclined(ctx context.Context, offer *models.TradeOffer) error {
	return s.sendToProposer(ctx, offer, "Your trade offer was declined", offerDeclinedTemplate)
}

func (s *NotificationService) SendTradeCompleted(ctx context.Context, offer *models.TradeOffer) error {
	if err := s.sendToProposer(ctx, offer, "Trade completed", tradeCompletedTemplate); err != nil {
		return err
	}

	owner, err := s.users.FindByID(ctx, offer.ToUserID)
	if err != nil {
		return err
	}
	body, err := s.render(tradeCompletedTemplate, map[string]interface{}{"Name": owner.Name})
	if err != nil {
		return err
	}
	return s.send(owner.Email, "Trade completed", body)
}

func (s *NotificationService) sendToProposer(ctx context.Context, offer *models.TradeOffer, subject, tmpl string) error {
	proposer, err := s.users.FindByID(ctx, offer.FromUserID)
	if err != nil {
		return err
	}

	body, err := s.render(tmpl, map[string]interface{}{
		"Name":     proposer.Name,
		"OfferURL": s.offerURL(offer),
	})
	if err != nil {
		return err
	}

	return s.send(proposer.Email, subject, body)
}

func (s *NotificationService) offerURL(offer *models.TradeOffer) string {
	return fmt.Sprintf("%s/offers/%s", s.cfg.Frontend.BaseURL, offer.ID)
}

func (s *NotificationService) render(tmpl string, data map[string]interface{}) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}
	return buf.String(), nil
}

func (s *NotificationService) send(to, subject, body string) error {
	if s.cfg.Email.SMTPHost == "" || s.cfg.Email.SMTPUsername == "" {
		// Mail not configured (development); skip silently.
		return nil
	}

	from := s.cfg.Email.FromEmail
	msg := []byte(fmt.Sprintf(
		"From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.cfg.Email.FromName, from, to, subject, body,
	))

	auth := smtp.PlainAuth("", s.cfg.Email.SMTPUsername, s.cfg.Email.SMTPPassword, s.cfg.Email.SMTPHost)
	addr := s.cfg.Email.SMTPHost + ":" + s.cfg.Email.SMTPPort

	if err := smtp.SendMail(addr, auth, from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
