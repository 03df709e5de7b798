// Package notifications publishes booking lifecycle events for the external
// mailer. Delivery is best-effort: failures are logged, never propagated.
package notifications

import (
	"context"

	"hackportal/pkg/kafka"
	"hackportal/pkg/logger"
)

const (
	EventBookingConfirmed = "mentorship.booking.confirmed"
	EventBookingCancelled = "mentorship.booking.cancelled"
)

// Event describes one booked or cancelled slot.
type Event struct {
	SlotID      string `json:"slotId"`
	MentorID    string `json:"mentorId"`
	MentorEmail string `json:"mentorEmail,omitempty"`
	MentorName  string `json:"mentorName,omitempty"`
	HackerID    string `json:"hackerId"`
	HackerName  string `json:"hackerName,omitempty"`
	TeamName    string `json:"teamName,omitempty"`
	StartTime   int64  `json:"startTime"`
	EndTime     int64  `json:"endTime"`
	Location    string `json:"location,omitempty"`
}

type Dispatcher interface {
	BookingConfirmed(ctx context.Context, ev Event)
	BookingCancelled(ctx context.Context, ev Event)
}

// kafkaDispatcher publishes events keyed by mentor so one mentor's
// notifications stay ordered.
type kafkaDispatcher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaDispatcher(producer *kafka.Producer, log *logger.Logger) Dispatcher {
	return &kafkaDispatcher{producer: producer, log: log}
}

func (d *kafkaDispatcher) BookingConfirmed(ctx context.Context, ev Event) {
	d.publish(ctx, EventBookingConfirmed, ev)
}

func (d *kafkaDispatcher) BookingCancelled(ctx context.Context, ev Event) {
	d.publish(ctx, EventBookingCancelled, ev)
}

func (d *kafkaDispatcher) publish(ctx context.Context, eventType string, ev Event) {
	msg, err := kafka.NewMessage().
		WithKey(ev.MentorID).
		WithValue(ev).
		WithEventType(eventType).
		WithSource("portal").
		Build()
	if err != nil {
		d.log.Error("Failed to build notification message", "event_type", eventType, "slot_id", ev.SlotID, "error", err)
		return
	}

	if err := d.producer.Publish(ctx, msg); err != nil {
		d.log.Error("Failed to publish notification", "event_type", eventType, "slot_id", ev.SlotID, "error", err)
		return
	}

	d.log.Info("Notification dispatched", "event_type", eventType, "slot_id", ev.SlotID, "mentor_id", ev.MentorID)
}

// logDispatcher is the fallback when no broker is configured.
type logDispatcher struct {
	log *logger.Logger
}

func NewLogDispatcher(log *logger.Logger) Dispatcher {
	return &logDispatcher{log: log}
}

func (d *logDispatcher) BookingConfirmed(_ context.Context, ev Event) {
	d.log.Info("Booking confirmed", "slot_id", ev.SlotID, "mentor_id", ev.MentorID, "hacker_id", ev.HackerID)
}

func (d *logDispatcher) BookingCancelled(_ context.Context, ev Event) {
	d.log.Info("Booking cancelled", "slot_id", ev.SlotID, "mentor_id", ev.MentorID, "hacker_id", ev.HackerID)
}
