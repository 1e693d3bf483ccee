//go:build unit

package channel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/infra/channel"
	"rental-hunter/internal/usecase/shared"
	"rental-hunter/tests/common/builder"
)

type stubDispatcher struct {
	name  string
	kinds []outreach.AttemptKind
}

func (d *stubDispatcher) Send(_ context.Context, _ *outreach.Target, _ *listing.Listing, kind outreach.AttemptKind) (shared.DispatchResult, error) {
	d.kinds = append(d.kinds, kind)
	return shared.DispatchResult{Success: true, CorrelationID: d.name}, nil
}

func TestChannelDispatcher_RoutesByKind(t *testing.T) {
	email := &stubDispatcher{name: "email"}
	phone := &stubDispatcher{name: "phone"}
	d := channel.NewChannelDispatcher(email, phone)

	target := builder.NewTargetBuilder().BuildDomain()
	lst := builder.NewListingBuilder().MustBuildDomain()

	for _, kind := range []outreach.AttemptKind{
		outreach.AttemptInitialEmail,
		outreach.AttemptPhoneCall,
		outreach.AttemptUrgentEmail,
	} {
		_, err := d.Send(context.Background(), target, lst, kind)
		require.NoError(t, err)
	}

	assert.Equal(t, []outreach.AttemptKind{outreach.AttemptInitialEmail, outreach.AttemptUrgentEmail}, email.kinds)
	assert.Equal(t, []outreach.AttemptKind{outreach.AttemptPhoneCall}, phone.kinds)
}
