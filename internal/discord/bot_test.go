package discord

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/havenchat/haven/internal/discord/mock"
	"github.com/havenchat/haven/pkg/dialogue"
)

// recordingResponder captures turn calls for assertions.
type recordingResponder struct {
	resp     dialogue.Response
	score    float64
	strategy string
	err      error

	sessions []string
	channels []string
	messages []string
}

func (r *recordingResponder) Respond(_ context.Context, sessionID, channel, message string) (dialogue.Response, float64, error) {
	r.sessions = append(r.sessions, sessionID)
	r.channels = append(r.channels, channel)
	r.messages = append(r.messages, message)
	if r.err != nil {
		return dialogue.Response{}, 0, r.err
	}
	return r.resp, r.score, nil
}

func (r *recordingResponder) Strategy(_ context.Context, sessionID string) (string, error) {
	r.sessions = append(r.sessions, sessionID)
	if r.err != nil {
		return "", r.err
	}
	return r.strategy, nil
}

func newMessage(channelID, guildID, authorID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: channelID,
		GuildID:   guildID,
		Content:   content,
		Author:    &discordgo.User{ID: authorID},
	}}
}

func TestHandleMessageTurn(t *testing.T) {
	t.Parallel()
	responder := &recordingResponder{
		resp: dialogue.Response{
			Category: dialogue.CategorySentimentFallback,
			Text:     "I'm here to listen. What's most important for you to talk about right now?",
		},
	}
	b := &Bot{responder: responder}
	sender := &mock.MessageSender{}

	b.handleMessage(sender, newMessage("chan-1", "guild-1", "user-1", "I had a rough day"), "bot-id")

	if len(responder.messages) != 1 || responder.messages[0] != "I had a rough day" {
		t.Fatalf("messages = %v, want the user text", responder.messages)
	}
	if responder.sessions[0] != "chan-1" {
		t.Errorf("session = %q, want channel ID", responder.sessions[0])
	}
	if responder.channels[0] != "discord" {
		t.Errorf("channel tag = %q, want discord", responder.channels[0])
	}
	sent := sender.LastSent()
	if sent.ChannelID != "chan-1" || sent.Content != responder.resp.Text {
		t.Errorf("sent = %+v, want reply in chan-1", sent)
	}
}

func TestHandleMessageStrategyCommand(t *testing.T) {
	t.Parallel()
	responder := &recordingResponder{strategy: "Take 5 deep breaths, exhaling slowly each time"}
	b := &Bot{responder: responder}
	sender := &mock.MessageSender{}

	b.handleMessage(sender, newMessage("chan-1", "", "user-1", "!Strategy"), "bot-id")

	if len(responder.messages) != 0 {
		t.Fatalf("command ran a chat turn: %v", responder.messages)
	}
	got := sender.LastSent().Content
	if !strings.Contains(got, responder.strategy) {
		t.Errorf("reply = %q, want it to contain the strategy", got)
	}
}

func TestHandleMessageIgnores(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		msg  *discordgo.MessageCreate
	}{
		{"own message", newMessage("chan-1", "", "bot-id", "hello")},
		{"bot author", func() *discordgo.MessageCreate {
			m := newMessage("chan-1", "", "other-bot", "hello")
			m.Author.Bot = true
			return m
		}()},
		{"missing author", &discordgo.MessageCreate{Message: &discordgo.Message{ChannelID: "chan-1", Content: "hello"}}},
		{"blank content", newMessage("chan-1", "", "user-1", "   ")},
		{"other guild", newMessage("chan-1", "guild-other", "user-1", "hello")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			responder := &recordingResponder{}
			b := &Bot{responder: responder, guildID: "guild-1"}
			sender := &mock.MessageSender{}

			b.handleMessage(sender, tc.msg, "bot-id")

			if len(responder.sessions) != 0 {
				t.Errorf("responder was called: sessions = %v", responder.sessions)
			}
			if len(sender.Sent) != 0 {
				t.Errorf("message was sent: %+v", sender.Sent)
			}
		})
	}
}

func TestHandleMessageServesDirectMessages(t *testing.T) {
	t.Parallel()
	responder := &recordingResponder{resp: dialogue.Response{Text: "ok"}}
	b := &Bot{responder: responder, guildID: "guild-1"}
	sender := &mock.MessageSender{}

	// DMs carry no guild ID and bypass the guild filter.
	b.handleMessage(sender, newMessage("dm-1", "", "user-1", "hello there"), "bot-id")

	if len(sender.Sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.Sent))
	}
}

func TestHandleMessageTurnError(t *testing.T) {
	t.Parallel()
	responder := &recordingResponder{err: errors.New("store down")}
	b := &Bot{responder: responder}
	sender := &mock.MessageSender{}

	b.handleMessage(sender, newMessage("chan-1", "", "user-1", "I feel stressed"), "bot-id")

	got := sender.LastSent().Content
	if !strings.Contains(got, "try again") {
		t.Errorf("reply = %q, want an apology asking to retry", got)
	}
}

func TestHandleMessageSendErrorDoesNotPanic(t *testing.T) {
	t.Parallel()
	responder := &recordingResponder{resp: dialogue.Response{Text: "ok"}}
	b := &Bot{responder: responder}
	sender := &mock.MessageSender{Err: errors.New("gateway closed")}

	b.handleMessage(sender, newMessage("chan-1", "", "user-1", "hello"), "bot-id")
}
