package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventBookingCreated   EventType = "booking-created"
	EventBookingCancelled EventType = "booking-cancelled"
	EventPlayerJoined     EventType = "player-joined"
	EventPlayerLeft       EventType = "player-left"
	EventRosterFull       EventType = "roster-full"
)
