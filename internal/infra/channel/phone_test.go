//go:build unit

package channel_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/infra/channel"
	"rental-hunter/internal/pkg/config"
	"rental-hunter/tests/common/builder"
)

func telephonyConfig(baseURL string) config.TelephonyConfig {
	return config.TelephonyConfig{
		AccountSID: "AC123",
		AuthToken:  "token",
		FromNumber: "+33700000000",
		BaseURL:    baseURL,
	}
}

func TestPhoneChannel_PlacesCall(t *testing.T) {
	var gotForm map[string]string
	var gotPath, gotUser string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, _, _ := r.BasicAuth()
		gotUser = user
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"To":   r.PostFormValue("To"),
			"From": r.PostFormValue("From"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"sid": "CA42", "status": "queued"})
	}))
	defer srv.Close()

	ch := channel.NewPhoneChannelWithClient(telephonyConfig(srv.URL), srv.Client())
	target := builder.NewTargetBuilder().BuildDomain()
	lst := builder.NewListingBuilder().MustBuildDomain()

	result, err := ch.Send(context.Background(), target, lst, outreach.AttemptPhoneCall)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, "CA42", result.CorrelationID)
	assert.Equal(t, "Appel automatique - "+lst.Title(), result.Subject)
	assert.Contains(t, result.Content, `language="fr-FR"`)
	assert.Contains(t, result.Content, lst.Address())
	assert.Equal(t, "queued", result.Metadata["call_status"])

	assert.Equal(t, "/2010-04-01/Accounts/AC123/Calls.json", gotPath)
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, target.Phone(), gotForm["To"])
	assert.Equal(t, "+33700000000", gotForm["From"])
}

func TestPhoneChannel_ProviderRejectionIsNonConsuming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	ch := channel.NewPhoneChannelWithClient(telephonyConfig(srv.URL), srv.Client())
	target := builder.NewTargetBuilder().BuildDomain()
	lst := builder.NewListingBuilder().MustBuildDomain()

	result, err := ch.Send(context.Background(), target, lst, outreach.AttemptPhoneCall)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "402")
}

func TestPhoneChannel_NotConfigured(t *testing.T) {
	ch := channel.NewPhoneChannel(config.TelephonyConfig{})
	target := builder.NewTargetBuilder().BuildDomain()
	lst := builder.NewListingBuilder().MustBuildDomain()

	result, err := ch.Send(context.Background(), target, lst, outreach.AttemptPhoneCall)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "telephony is not configured", result.Reason)
}

func TestPhoneChannel_NoNumberIsNonConsuming(t *testing.T) {
	ch := channel.NewPhoneChannel(telephonyConfig("https://api.example.test"))
	target := builder.NewTargetBuilder().With(func(b *builder.TargetBuilder) {
		b.Phone = " "
	}).BuildDomain()
	lst := builder.NewListingBuilder().MustBuildDomain()

	result, err := ch.Send(context.Background(), target, lst, outreach.AttemptPhoneCall)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "target has no phone number", result.Reason)
}

func TestPhoneChannel_RejectsEmailKind(t *testing.T) {
	ch := channel.NewPhoneChannel(telephonyConfig("https://api.example.test"))
	target := builder.NewTargetBuilder().BuildDomain()
	lst := builder.NewListingBuilder().MustBuildDomain()

	_, err := ch.Send(context.Background(), target, lst, outreach.AttemptInitialEmail)
	assert.Error(t, err)
}
