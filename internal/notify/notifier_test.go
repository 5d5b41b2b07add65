package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartdetector/moderation/internal/models"
)

type stubChannel struct {
	err   error
	calls int
}

func (s *stubChannel) Notify(_ context.Context, _ models.AlertMessage) error {
	s.calls++
	return s.err
}

func TestMultiAttemptsEveryChannel(t *testing.T) {
	failing := &stubChannel{err: errors.New("smtp down")}
	working := &stubChannel{}

	err := Multi(failing, working).Notify(context.Background(), models.AlertMessage{
		RecipientEmail: "bob@example.com",
		Subject:        "test",
	})

	require.Error(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, working.calls, "later channels still attempted after a failure")
}

func TestMultiSingleChannelPassthrough(t *testing.T) {
	ch := &stubChannel{}
	n := Multi(ch)

	require.NoError(t, n.Notify(context.Background(), models.AlertMessage{}))
	assert.Equal(t, 1, ch.calls)
}
