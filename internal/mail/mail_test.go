package mail

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu      sync.Mutex
	sent    []Message
	err     error
	release chan struct{}
}

func (s *recordingSender) Send(ctx context.Context, msg Message) error {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *recordingSender) messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Message(nil), s.sent...)
}

func TestVerificationMessage(t *testing.T) {
	msg, err := VerificationMessage("a@x.com", "https://gym.example.com/user/verify?token=abc&x=<y>")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", msg.To)
	assert.Equal(t, "Verify your email", msg.Subject)
	assert.Contains(t, msg.HTML, `href="https://gym.example.com/user/verify?token=abc&amp;x=%3cy%3e"`)
}

func TestQueue_DeliversAndDrainsOnClose(t *testing.T) {
	sender := &recordingSender{}
	q := NewQueue(sender, zerolog.Nop(), 4, time.Second)

	require.NoError(t, q.Dispatch(Message{To: "a@x.com"}))
	require.NoError(t, q.Dispatch(Message{To: "b@x.com"}))
	require.NoError(t, q.Close(context.Background()))

	msgs := sender.messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "a@x.com", msgs[0].To)
	assert.ErrorIs(t, q.Dispatch(Message{To: "c@x.com"}), ErrQueueClosed)
	assert.NoError(t, q.Close(context.Background()))
}

func TestQueue_FullIsReported(t *testing.T) {
	sender := &recordingSender{release: make(chan struct{})}
	q := NewQueue(sender, zerolog.Nop(), 1, time.Second)

	// first message is picked up by the worker and blocks, second fills the buffer
	require.NoError(t, q.Dispatch(Message{To: "1@x.com"}))
	require.Eventually(t, func() bool { return len(q.jobs) == 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, q.Dispatch(Message{To: "2@x.com"}))

	assert.ErrorIs(t, q.Dispatch(Message{To: "3@x.com"}), ErrQueueFull)

	close(sender.release)
	require.NoError(t, q.Close(context.Background()))
	assert.Len(t, sender.messages(), 2)
}

func TestQueue_LogsDeliveryFailure(t *testing.T) {
	var buf bytes.Buffer
	sender := &recordingSender{err: errors.New("550 mailbox unavailable")}
	q := NewQueue(sender, zerolog.New(&buf), 1, time.Second)

	require.NoError(t, q.Dispatch(Message{To: "a@x.com", Subject: "Verify your email"}))
	require.NoError(t, q.Close(context.Background()))

	assert.Contains(t, buf.String(), "email dispatch failed")
	assert.Contains(t, buf.String(), "550 mailbox unavailable")
}

func TestQueue_CloseHonoursContext(t *testing.T) {
	sender := &recordingSender{release: make(chan struct{})}
	q := NewQueue(sender, zerolog.Nop(), 1, time.Second)
	require.NoError(t, q.Dispatch(Message{To: "a@x.com"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Close(ctx), context.DeadlineExceeded)

	close(sender.release)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(zerolog.New(&buf))

	msg := Message{
		To:      "a@x.com",
		Subject: "Verify your email",
		HTML:    `<a href="http://localhost/user/verify?token=secret.verification.token">Verify</a>`,
	}
	require.NoError(t, s.Send(context.Background(), msg))
	assert.Contains(t, buf.String(), "a@x.com")
	assert.Contains(t, buf.String(), "Verify your email")
	assert.NotContains(t, buf.String(), "secret.verification.token")
}
