package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexdevs/sentinel/internal/domain/model"
	"github.com/nexdevs/sentinel/internal/domain/port/outbound"
)

type fakePoster struct {
	channel string
	calls   int
	err     error
}

func (f *fakePoster) PostMessageContext(_ context.Context, channelID string, _ ...slackapi.MsgOption) (string, string, error) {
	f.calls++
	f.channel = channelID
	if f.err != nil {
		return "", "", f.err
	}
	return channelID, "1756728000.000100", nil
}

func alertNotification() outbound.AlertNotification {
	return outbound.AlertNotification{
		Event: model.SecurityEvent{
			ID:        "evt-42",
			Type:      model.EventUnauthorizedAccess,
			Username:  "admin",
			ClientIP:  "198.51.100.9",
			Timestamp: time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
			Severity:  model.SeverityHigh,
		},
		Summary: outbound.AlertSummary{TotalEvents: 2, TimeWindow: "30 minutes", Threshold: 1},
	}
}

func TestSendSecurityAlertPostsToConfiguredChannel(t *testing.T) {
	fake := &fakePoster{}
	n := &Notifier{client: fake, config: Config{Channel: "C0SECURITY"}}

	err := n.SendSecurityAlert(context.Background(), alertNotification())
	require.NoError(t, err)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "C0SECURITY", fake.channel)
}

func TestSendSecurityAlertWrapsError(t *testing.T) {
	fake := &fakePoster{err: errors.New("channel_not_found")}
	n := &Notifier{client: fake, config: Config{Channel: "C0MISSING"}}

	err := n.SendSecurityAlert(context.Background(), alertNotification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel_not_found")
}

func TestBuildAlertBlocks(t *testing.T) {
	blocks := buildAlertBlocks(alertNotification())
	require.Len(t, blocks, 3)

	header, ok := blocks[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "unauthorized_access")
	assert.Contains(t, header.Text.Text, ":red_circle:")

	section, ok := blocks[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	require.NotNil(t, section.Fields)
	assert.Len(t, section.Fields, 4)
}

func TestChannelAndRecipient(t *testing.T) {
	n := &Notifier{config: Config{Channel: "C0SECURITY"}}
	assert.Equal(t, "slack", n.Channel())
	assert.Equal(t, "C0SECURITY", n.Recipient())
}
