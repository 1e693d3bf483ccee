package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/internal/pkg/errs"
	"rental-hunter/internal/usecase/shared"
)

// PhoneChannel places automated calls through a Twilio-compatible REST API.
// The call reads a synthesized French script asking the agency to call back.
type PhoneChannel struct {
	cfg    config.TelephonyConfig
	client *http.Client
}

func NewPhoneChannel(cfg config.TelephonyConfig) *PhoneChannel {
	return &PhoneChannel{cfg: cfg, client: &http.Client{Timeout: 30 * time.Second}}
}

// NewPhoneChannelWithClient is the test constructor.
func NewPhoneChannelWithClient(cfg config.TelephonyConfig, client *http.Client) *PhoneChannel {
	return &PhoneChannel{cfg: cfg, client: client}
}

func (c *PhoneChannel) Configured() bool {
	return c.cfg.AccountSID != "" && c.cfg.AuthToken != "" && c.cfg.FromNumber != ""
}

func (c *PhoneChannel) Send(ctx context.Context, target *outreach.Target, lst *listing.Listing, kind outreach.AttemptKind) (shared.DispatchResult, error) {
	if kind != outreach.AttemptPhoneCall {
		return shared.DispatchResult{}, errs.New("attempt kind is not a phone kind: " + string(kind))
	}
	if !c.Configured() {
		return shared.DispatchResult{Success: false, Reason: "telephony is not configured"}, nil
	}
	if strings.TrimSpace(target.Phone()) == "" {
		return shared.DispatchResult{Success: false, Reason: "target has no phone number"}, nil
	}

	script := callScript(lst)

	form := url.Values{}
	form.Set("To", target.Phone())
	form.Set("From", c.cfg.FromNumber)
	form.Set("Twiml", script)
	form.Set("Timeout", "30")

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.AccountSID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return shared.DispatchResult{}, errs.Wrap(err, "failed to build call request")
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return shared.DispatchResult{Success: false, Reason: "call request failed: " + err.Error()}, nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return shared.DispatchResult{
			Success: false,
			Reason:  fmt.Sprintf("telephony api returned status %d", resp.StatusCode),
		}, nil
	}

	var call struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(body, &call); err != nil {
		return shared.DispatchResult{}, errs.Wrap(err, "failed to decode call response")
	}

	return shared.DispatchResult{
		Success:       true,
		CorrelationID: call.SID,
		Subject:       "Appel automatique - " + lst.Title(),
		Content:       script,
		Metadata:      map[string]string{"channel": "phone", "call_status": call.Status, "to": target.Phone()},
	}, nil
}

func callScript(lst *listing.Listing) string {
	place := lst.Address()
	if place == "" {
		place = lst.City()
	}
	say := fmt.Sprintf(
		"Bonjour, je vous appelle concernant le bien immobilier situé %s au prix de %.0f euros par mois. "+
			"Je vous ai envoyé un email récemment mais n'ai pas eu de retour. "+
			"Je suis très intéressé par ce bien et souhaiterais organiser une visite rapidement. "+
			"Pourriez-vous me rappeler pour organiser une visite ? Je vous remercie et vous souhaite une bonne journée.",
		place, lst.Price(),
	)
	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?><Response><Pause length="1"/><Say voice="alice" language="fr-FR">%s</Say></Response>`,
		say,
	)
}
