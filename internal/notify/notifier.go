package notify

import (
	"context"
	"errors"

	"github.com/smartdetector/moderation/internal/models"
)

// Notifier delivers one composed alert to its recipient. Implementations
// return an error for the single delivery only; the caller decides how a
// failure affects the rest of a fan-out.
type Notifier interface {
	Notify(ctx context.Context, msg models.AlertMessage) error
}

type multiNotifier struct {
	channels []Notifier
}

// Multi fans a message across every configured channel. Each channel is
// attempted regardless of earlier failures; the joined error reports all of
// them.
func Multi(channels ...Notifier) Notifier {
	if len(channels) == 1 {
		return channels[0]
	}
	return &multiNotifier{channels: channels}
}

func (m *multiNotifier) Notify(ctx context.Context, msg models.AlertMessage) error {
	var errs []error
	for _, ch := range m.channels {
		if err := ch.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
