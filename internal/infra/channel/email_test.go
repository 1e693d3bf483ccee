//go:build unit

package channel_test

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/infra/channel"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/tests/common/builder"
)

type fakeSMTPSender struct {
	err  error
	addr string
	from string
	to   []string
	msg  []byte
}

func (f *fakeSMTPSender) SendMail(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
	f.addr = addr
	f.from = from
	f.to = to
	f.msg = msg
	return f.err
}

func smtpConfig() config.SMTPConfig {
	return config.SMTPConfig{
		Host:     "smtp.example.test",
		Port:     587,
		Username: "hunter@example.test",
		Password: "secret",
		FromName: "Rental Hunter",
	}
}

func TestEmailChannel_SendInitial(t *testing.T) {
	sender := &fakeSMTPSender{}
	ch := channel.NewEmailChannelWithSender(smtpConfig(), sender)

	target := builder.NewTargetBuilder().BuildDomain()
	lst := builder.NewListingBuilder().MustBuildDomain()

	result, err := ch.Send(context.Background(), target, lst, outreach.AttemptInitialEmail)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.NotEmpty(t, result.CorrelationID)
	assert.Equal(t, "Demande de visite - "+lst.Title(), result.Subject)
	assert.Contains(t, result.Content, "Bonjour Mme Dupont")
	assert.Contains(t, result.Content, lst.SourceURL())
	assert.Contains(t, result.Content, "920 €/mois")
	assert.Equal(t, "email", result.Metadata["channel"])
	assert.Equal(t, target.Email(), result.Metadata["to"])

	assert.Equal(t, "smtp.example.test:587", sender.addr)
	assert.Equal(t, "hunter@example.test", sender.from)
	assert.Equal(t, []string{target.Email()}, sender.to)
	msg := string(sender.msg)
	assert.Contains(t, msg, "Subject: "+result.Subject)
	assert.Contains(t, msg, "Message-ID: <"+result.CorrelationID+"@rental-hunter>")
	assert.True(t, strings.Contains(msg, "charset=utf-8"))
}

func TestEmailChannel_SendUrgent(t *testing.T) {
	sender := &fakeSMTPSender{}
	ch := channel.NewEmailChannelWithSender(smtpConfig(), sender)

	target := builder.NewTargetBuilder().BuildDomain()
	lst := builder.NewListingBuilder().MustBuildDomain()

	result, err := ch.Send(context.Background(), target, lst, outreach.AttemptUrgentEmail)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "URGENT - Dernière relance - "+lst.Title(), result.Subject)
	assert.Contains(t, result.Content, "dernière relance")
}

func TestEmailChannel_NoAddressIsNonConsuming(t *testing.T) {
	sender := &fakeSMTPSender{}
	ch := channel.NewEmailChannelWithSender(smtpConfig(), sender)

	target := builder.NewTargetBuilder().With(func(b *builder.TargetBuilder) {
		b.Email = ""
	}).BuildDomain()
	lst := builder.NewListingBuilder().MustBuildDomain()

	result, err := ch.Send(context.Background(), target, lst, outreach.AttemptInitialEmail)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "target has no email address", result.Reason)
	assert.Nil(t, sender.msg)
}

func TestEmailChannel_SMTPRefusalIsNonConsuming(t *testing.T) {
	sender := &fakeSMTPSender{err: errors.New("550 mailbox unavailable")}
	ch := channel.NewEmailChannelWithSender(smtpConfig(), sender)

	target := builder.NewTargetBuilder().BuildDomain()
	lst := builder.NewListingBuilder().MustBuildDomain()

	result, err := ch.Send(context.Background(), target, lst, outreach.AttemptInitialEmail)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "550 mailbox unavailable")
}

func TestEmailChannel_RejectsPhoneKind(t *testing.T) {
	ch := channel.NewEmailChannelWithSender(smtpConfig(), &fakeSMTPSender{})

	target := builder.NewTargetBuilder().BuildDomain()
	lst := builder.NewListingBuilder().MustBuildDomain()

	_, err := ch.Send(context.Background(), target, lst, outreach.AttemptPhoneCall)
	assert.Error(t, err)
}
