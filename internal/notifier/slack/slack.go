package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/padel-reserva/internal/booking"
	"github.com/mauv0809/padel-reserva/internal/metrics"
	"github.com/mauv0809/padel-reserva/internal/notifier"
	"github.com/mauv0809/padel-reserva/internal/players"
	"github.com/mauv0809/padel-reserva/internal/roster"
	"github.com/mauv0809/padel-reserva/internal/slots"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendBookingCreated(b *booking.Booking, entries []booking.RosterEntry, dryRun bool) error {
	msg := s.formatBookingCreated(b, entries)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendBookingCancelled(b *booking.Booking, dryRun bool) error {
	msg := s.formatBookingCancelled(b)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerJoined(b *booking.Booking, player players.Profile, seatsLeft int, dryRun bool) error {
	msg := s.formatPlayerJoined(b, player, seatsLeft)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendRosterFull(b *booking.Booking, entries []booking.RosterEntry, dryRun bool) error {
	msg := s.formatRosterFull(b, entries)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// slotText renders a booking's slot as shown to players, e.g.
// "Saturday 06 Sep, 09:30 - 11:00".
func slotText(b *booking.Booking) string {
	day := time.Date(b.Date.Year, b.Date.Month, b.Date.Day, 0, 0, 0, 0, time.Local)
	return fmt.Sprintf("%s, %s - %s",
		day.Format("Monday 02 Jan"),
		b.StartTime.String(),
		slots.DisplayEnd(b.StartTime).String(),
	)
}

func playerLine(p players.Profile) string {
	name := strings.TrimSpace(p.Name + " " + p.Surname)
	return fmt.Sprintf("• %s — %s", name, players.LevelDescription(p.Level))
}

// formatBookingCreated creates the Slack message for a new reservation using Block Kit.
func (s *Notifier) formatBookingCreated(b *booking.Booking, entries []booking.RosterEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", "🎾 New match booked! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Time: %s", slotText(b))
	if b.IsPrivate {
		detailsText += "\nPrivate match"
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	// Players
	var playerNames []string
	for _, e := range entries {
		playerNames = append(playerNames, playerLine(e.Player))
	}
	if len(playerNames) > 0 {
		playersText := "Players:\n" + strings.Join(playerNames, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playersText, true, false), nil, nil))
	}

	// Context - For simpler, single-line info.
	seatsLeft := roster.Capacity - len(entries)
	if !b.IsPrivate && seatsLeft > 0 {
		contextElements := []slack.MixedElement{
			slack.NewTextBlockObject("plain_text", fmt.Sprintf("%d open seat(s) — come join!", seatsLeft), true, false),
		}
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatBookingCancelled creates the Slack message for a cancelled reservation.
func (s *Notifier) formatBookingCancelled(b *booking.Booking) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "❌ Match cancelled", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Time: %s\nThe slot is free again.", slotText(b))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerJoined creates the Slack message for a player claiming a seat.
func (s *Notifier) formatPlayerJoined(b *booking.Booking, player players.Profile, seatsLeft int) slack.Message {
	blocks := make([]slack.Block, 0)

	name := strings.TrimSpace(player.Name + " " + player.Surname)
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎾 %s joined a match!", name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Time: %s\nLevel: %s", slotText(b), players.LevelDescription(player.Level))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	if seatsLeft > 0 {
		contextElements := []slack.MixedElement{
			slack.NewTextBlockObject("plain_text", fmt.Sprintf("%d seat(s) still open", seatsLeft), true, false),
		}
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatRosterFull creates the Slack message for a match that filled its last seat.
func (s *Notifier) formatRosterFull(b *booking.Booking, entries []booking.RosterEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🔥 Match complete — see you on court! 🔥", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Time: %s", slotText(b))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	var playerNames []string
	for _, e := range entries {
		playerNames = append(playerNames, playerLine(e.Player))
	}
	if len(playerNames) > 0 {
		playersText := "Players:\n" + strings.Join(playerNames, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playersText, true, false), nil, nil))
	}

	if avg, ok := roster.AverageLevel(entries); ok {
		contextElements := []slack.MixedElement{
			slack.NewTextBlockObject("plain_text", fmt.Sprintf("Average level: %.1f", avg), true, false),
		}
		blocks = append(blocks, slack.NewContextBlock("", contextElements...))
	}

	return slack.NewBlockMessage(blocks...)
}
