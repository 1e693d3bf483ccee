package channel

import (
	"context"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/domain/outreach"
	"rental-hunter/internal/usecase/shared"
)

// ChannelDispatcher routes each attempt to the channel its kind implies.
type ChannelDispatcher struct {
	email shared.Dispatcher
	phone shared.Dispatcher
}

func NewChannelDispatcher(email, phone shared.Dispatcher) *ChannelDispatcher {
	return &ChannelDispatcher{email: email, phone: phone}
}

func (d *ChannelDispatcher) Send(ctx context.Context, target *outreach.Target, lst *listing.Listing, kind outreach.AttemptKind) (shared.DispatchResult, error) {
	if kind.Channel() == outreach.ChannelPhone {
		return d.phone.Send(ctx, target, lst, kind)
	}
	return d.email.Send(ctx, target, lst, kind)
}

var _ shared.Dispatcher = (*ChannelDispatcher)(nil)
