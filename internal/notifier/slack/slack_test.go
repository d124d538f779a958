package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/padel-reserva/internal/booking"
	"github.com/mauv0809/padel-reserva/internal/metrics"
	"github.com/mauv0809/padel-reserva/internal/players"
	"github.com/mauv0809/padel-reserva/internal/slots"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testBooking(t *testing.T) *booking.Booking {
	t.Helper()
	day, err := slots.ParseDate("2026-09-06")
	require.NoError(t, err)
	start, err := slots.ParseTimeOfDay("09:30")
	require.NoError(t, err)
	return &booking.Booking{
		ID:        "bk-1",
		Date:      day,
		StartTime: start,
		EndTime:   slots.StoredEnd(start),
		OwnerID:   "u1",
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.NotifSent())
	assert.Equal(t, 0, metrics.NotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 0, metrics.NotifSent())
	assert.Equal(t, 1, metrics.NotifFailed())
}

// Test one of the public methods to ensure it calls the private sender.
func TestSendBookingCreated_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendBookingCreated(testBooking(t), nil, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendBookingCreated")
}

func TestFormatBookingCreated(t *testing.T) {
	b := testBooking(t)
	entries := []booking.RosterEntry{
		{BookingID: b.ID, UserID: "u1", Player: players.Profile{ID: "u1", Name: "Ana", Surname: "García", Level: 5}},
	}
	client := &Notifier{channelID: "C123"}
	msg := client.formatBookingCreated(b, entries)
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	// 1. Header Block
	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "Expected first block to be a HeaderBlock")
	assert.Contains(t, header.Text.Text, "New match booked")

	// 2. Details Block
	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Expected second block to be a SectionBlock")
	assert.Contains(t, details.Text.Text, "09:30 - 11:00")
	assert.Contains(t, details.Text.Text, "06 Sep")

	// 3. Players Block
	playersBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok, "Expected third block to be a SectionBlock")
	assert.Contains(t, playersBlock.Text.Text, "Ana García")
	assert.Contains(t, playersBlock.Text.Text, "5 (Medio/Alto)")

	// 4. Context Block with open seats
	ctxBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok, "Expected fourth block to be a ContextBlock")
	text, ok := ctxBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Contains(t, text.Text, "3 open seat(s)")
}

func TestFormatBookingCreated_PrivateHidesOpenSeats(t *testing.T) {
	b := testBooking(t)
	b.IsPrivate = true
	client := &Notifier{channelID: "C123"}
	msg := client.formatBookingCreated(b, nil)
	for _, block := range msg.Blocks.BlockSet {
		_, isCtx := block.(*slackapi.ContextBlock)
		assert.False(t, isCtx, "private bookings should not advertise open seats")
	}
}

func TestFormatRosterFull(t *testing.T) {
	b := testBooking(t)
	entries := []booking.RosterEntry{
		{Player: players.Profile{Name: "Ana", Surname: "García", Level: 4}},
		{Player: players.Profile{Name: "Beto", Surname: "Ruiz", Level: 5}},
		{Player: players.Profile{Name: "Carla", Surname: "Mora", Level: 7}},
		{Player: players.Profile{Name: "Dani", Surname: "Sanz", Level: 4}},
	}
	client := &Notifier{channelID: "C123"}
	msg := client.formatRosterFull(b, entries)
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks")

	ctxBlock, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok, "Expected last block to be a ContextBlock")
	text, ok := ctxBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Average level: 5.0")
}

func TestFormatPlayerJoined(t *testing.T) {
	b := testBooking(t)
	p := players.Profile{ID: "u2", Name: "Beto", Surname: "Ruiz", Level: 3}
	client := &Notifier{channelID: "C123"}
	msg := client.formatPlayerJoined(b, p, 2)
	require.Len(t, msg.Blocks.BlockSet, 3, "Expected 3 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Contains(t, header.Text.Text, "Beto Ruiz joined")

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, details.Text.Text, "3 (Bajo/Medio)")
}
