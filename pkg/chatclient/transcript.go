package chatclient

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Role identifies who authored a transcript message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

const (
	// Greeting is the first bot message of every session.
	Greeting = "Hi! How may i assist you?"
	// NetworkErrorText replaces the reply when the gateway cannot be reached.
	NetworkErrorText = "Error de red."
)

// Message is one transcript entry.
type Message struct {
	Role Role
	Text string
}

// Session keeps the transcript of one conversation in memory.
type Session struct {
	asker    Asker
	messages []Message
}

// NewSession starts a transcript with the bot greeting.
func NewSession(asker Asker) *Session {
	return &Session{
		asker:    asker,
		messages: []Message{{Role: RoleBot, Text: Greeting}},
	}
}

// Send trims input, appends the user turn and then the bot reply.
// Blank input is ignored and reports false.
func (s *Session) Send(ctx context.Context, input string) (Message, bool) {
	question := strings.TrimSpace(input)
	if question == "" {
		return Message{}, false
	}
	s.messages = append(s.messages, Message{Role: RoleUser, Text: question})

	text, err := s.asker.Ask(ctx, question)
	if err != nil {
		text = NetworkErrorText
	}
	reply := Message{Role: RoleBot, Text: text}
	s.messages = append(s.messages, reply)
	return reply, true
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Render writes messages one per line, prefixed by role.
func Render(w io.Writer, messages []Message) error {
	for _, m := range messages {
		prefix := "bot"
		if m.Role == RoleUser {
			prefix = "you"
		}
		if _, err := fmt.Fprintf(w, "%s> %s\n", prefix, m.Text); err != nil {
			return err
		}
	}
	return nil
}
