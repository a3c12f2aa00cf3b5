package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// Message is a single HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message synchronously and reports the outcome.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var verificationTmpl = template.Must(template.New("verify").Parse(
	`<p>Click <a href="{{.Link}}">here</a> to verify your email.</p>`,
))

// VerificationMessage renders the email that carries the verification link.
func VerificationMessage(to, link string) (Message, error) {
	var body bytes.Buffer
	if err := verificationTmpl.Execute(&body, struct{ Link string }{Link: link}); err != nil {
		return Message{}, fmt.Errorf("render verification email: %w", err)
	}
	return Message{
		To:      to,
		Subject: "Verify your email",
		HTML:    body.String(),
	}, nil
}
