// Package channel holds the outbound contact channels: SMTP email and a
// REST telephony connector. Expected provider refusals surface as failed
// dispatch results rather than errors so callers can treat them as
// non-consuming outcomes.
package channel

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"text/template"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/internal/pkg/errs"
	"rental-hunter/internal/usecase/shared"

	"github.com/google/uuid"
)

// SMTPSender abstracts the actual wire send so tests can run without a
// mail server.
type SMTPSender interface {
	SendMail(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

type netSMTPSender struct{}

func (netSMTPSender) SendMail(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	return smtp.SendMail(addr, a, from, to, msg)
}

type EmailChannel struct {
	cfg    config.SMTPConfig
	sender SMTPSender
}

func NewEmailChannel(cfg config.SMTPConfig) *EmailChannel {
	return &EmailChannel{cfg: cfg, sender: netSMTPSender{}}
}

// NewEmailChannelWithSender is the test constructor.
func NewEmailChannelWithSender(cfg config.SMTPConfig, sender SMTPSender) *EmailChannel {
	return &EmailChannel{cfg: cfg, sender: sender}
}

type emailData struct {
	ContactName string
	Title       string
	Price       float64
	City        string
	Rooms       *int
	Area        *float64
	SourceURL   string
	SenderName  string
	Attempt     int
}

var initialBody = template.Must(template.New("initial").Parse(`Bonjour{{if .ContactName}} {{.ContactName}}{{end}},

Je me permets de vous contacter concernant le bien immobilier suivant :

  {{.Title}}
  Prix : {{printf "%.0f" .Price}} €/mois
  Ville : {{.City}}
{{- if .Rooms}}
  Pièces : {{.Rooms}}
{{- end}}
{{- if .Area}}
  Surface : {{printf "%.0f" .Area}} m²
{{- end}}
  Annonce : {{.SourceURL}}

Je suis très intéressé(e) par ce bien et souhaiterais organiser une visite dans les plus brefs délais. Je dispose de tous les documents nécessaires pour une location.

Pourriez-vous me confirmer vos disponibilités pour une visite ?

Cordialement,
{{.SenderName}}
`))

var urgentBody = template.Must(template.New("urgent").Parse(`Bonjour{{if .ContactName}} {{.ContactName}}{{end}},

Il s'agit de ma dernière relance concernant ce bien :

  {{.Title}}
  Prix : {{printf "%.0f" .Price}} €/mois
  Ville : {{.City}}
  Annonce : {{.SourceURL}}

Je vous ai contacté(e) à plusieurs reprises sans obtenir de réponse. Le bien est-il toujours disponible ? Puis-je organiser une visite ?

Je peux me déplacer aujourd'hui même si nécessaire ; tous mes documents sont prêts.

Si le bien n'est plus disponible, merci de me le faire savoir par un simple retour d'email.

Cordialement,
{{.SenderName}}
`))

func (c *EmailChannel) Send(_ context.Context, target *outreach.Target, lst *listing.Listing, kind outreach.AttemptKind) (shared.DispatchResult, error) {
	if strings.TrimSpace(target.Email()) == "" {
		return shared.DispatchResult{Success: false, Reason: "target has no email address"}, nil
	}

	subject, body, err := c.compose(target, lst, kind)
	if err != nil {
		return shared.DispatchResult{}, err
	}

	correlationID := uuid.NewString()
	msg := c.buildMessage(target.Email(), subject, body, correlationID)

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	if err := c.sender.SendMail(addr, auth, c.cfg.FromAddress(), []string{target.Email()}, msg); err != nil {
		// SMTP refusal is an expected channel outcome, not a fault.
		return shared.DispatchResult{Success: false, Reason: "smtp send failed: " + err.Error()}, nil
	}

	return shared.DispatchResult{
		Success:       true,
		CorrelationID: correlationID,
		Subject:       subject,
		Content:       body,
		Metadata:      map[string]string{"channel": "email", "to": target.Email()},
	}, nil
}

func (c *EmailChannel) compose(target *outreach.Target, lst *listing.Listing, kind outreach.AttemptKind) (string, string, error) {
	data := emailData{
		ContactName: target.Name(),
		Title:       lst.Title(),
		Price:       lst.Price(),
		City:        lst.City(),
		Rooms:       lst.Rooms(),
		Area:        lst.Area(),
		SourceURL:   lst.SourceURL(),
		SenderName:  c.cfg.FromName,
		Attempt:     target.AttemptCount() + 1,
	}

	var (
		subject string
		tmpl    *template.Template
	)
	switch kind {
	case outreach.AttemptInitialEmail:
		subject = "Demande de visite - " + lst.Title()
		tmpl = initialBody
	case outreach.AttemptUrgentEmail:
		subject = "URGENT - Dernière relance - " + lst.Title()
		tmpl = urgentBody
	default:
		return "", "", errs.New("attempt kind is not an email kind: " + string(kind))
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", "", errs.Wrap(err, "failed to render email template")
	}
	return subject, sb.String(), nil
}

func (c *EmailChannel) buildMessage(to, subject, body, correlationID string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s <%s>\r\n", c.cfg.FromName, c.cfg.FromAddress())
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	fmt.Fprintf(&sb, "Message-ID: <%s@rental-hunter>\r\n", correlationID)
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}
