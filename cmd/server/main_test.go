package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workoutapi/internal/config"
	"workoutapi/internal/events"
	"workoutapi/internal/mail"
)

func TestNewSender(t *testing.T) {
	sender := newSender(&config.Config{}, zerolog.Nop())
	assert.IsType(t, &mail.LogSender{}, sender)

	sender = newSender(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587, MailFrom: "noreply@example.com"}, zerolog.Nop())
	assert.IsType(t, &mail.SMTPSender{}, sender)
}

func TestNewPublisher(t *testing.T) {
	publisher := newPublisher(&config.Config{}, zerolog.Nop())
	assert.IsType(t, events.NopPublisher{}, publisher)

	publisher = newPublisher(&config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaTopic: "workout-events"}, zerolog.Nop())
	require.IsType(t, &events.KafkaPublisher{}, publisher)
	assert.NoError(t, publisher.Close())
}
