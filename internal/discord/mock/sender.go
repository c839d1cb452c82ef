// Package mock provides test doubles for Discord message testing.
package mock

import "github.com/bwmarrin/discordgo"

// MessageSender records channel messages for test assertions.
type MessageSender struct {
	// Sent records all ChannelMessageSend calls in order.
	Sent []SentMessage

	// Err is returned by ChannelMessageSend when non-nil, allowing error
	// injection.
	Err error
}

// SentMessage is one recorded ChannelMessageSend call.
type SentMessage struct {
	ChannelID string
	Content   string
}

// ChannelMessageSend records the message and returns the configured error.
func (m *MessageSender) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.Sent = append(m.Sent, SentMessage{ChannelID: channelID, Content: content})
	if m.Err != nil {
		return nil, m.Err
	}
	return &discordgo.Message{ID: "mock-message", ChannelID: channelID, Content: content}, nil
}

// LastSent returns the most recently recorded message, or the zero value.
func (m *MessageSender) LastSent() SentMessage {
	if len(m.Sent) == 0 {
		return SentMessage{}
	}
	return m.Sent[len(m.Sent)-1]
}

// Reset clears all recorded messages and errors.
func (m *MessageSender) Reset() {
	m.Sent = nil
	m.Err = nil
}
