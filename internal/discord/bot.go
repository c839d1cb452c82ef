// Package discord provides the Discord presentation layer for Haven. It owns
// the discordgo.Session lifecycle and forwards channel messages to the shared
// turn loop; each Discord channel is its own conversation session.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/havenchat/haven/pkg/dialogue"
)

// turnTimeout bounds one chat turn triggered by a Discord message.
const turnTimeout = 10 * time.Second

// strategyCommand asks for a standalone coping strategy instead of a chat turn.
const strategyCommand = "!strategy"

// Responder executes one chat turn. Implemented by the app turn loop.
type Responder interface {
	Respond(ctx context.Context, sessionID, channel, message string) (dialogue.Response, float64, error)
	Strategy(ctx context.Context, sessionID string) (string, error)
}

// messageSender is the slice of the discordgo session the message handler
// needs. Narrowed for testability.
type messageSender interface {
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Config holds Discord bot configuration.
type Config struct {
	// Token is the Discord bot token (e.g., "MTIz...").
	Token string

	// GuildID restricts the bot to one guild. Empty means all guilds.
	// Direct messages are always served.
	GuildID string
}

// Bot owns the Discord gateway connection.
type Bot struct {
	session   *discordgo.Session
	responder Responder
	guildID   string
	closeOnce sync.Once
}

// New creates a Bot, connects to Discord, and registers the message handler.
func New(cfg Config, responder Responder) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session:   session,
		responder: responder,
		guildID:   cfg.GuildID,
	}

	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		b.handleMessage(s, m, s.State.User.ID)
	})

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("discord: open session: %w", err)
	}

	return b, nil
}

// Run blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	slog.Info("discord bot running", "guild", b.guildID)
	<-ctx.Done()
	return ctx.Err()
}

// Close disconnects from Discord.
func (b *Bot) Close() error {
	var closeErr error
	b.closeOnce.Do(func() {
		if err := b.session.Close(); err != nil {
			closeErr = fmt.Errorf("discord: close session: %w", err)
		}
		slog.Info("discord bot closed")
	})
	return closeErr
}

// handleMessage serves one incoming Discord message: either the strategy
// command or a full chat turn. The channel ID is the session ID, so a DM and
// a guild channel each keep their own conversation context.
func (b *Bot) handleMessage(s messageSender, m *discordgo.MessageCreate, botID string) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == botID {
		return
	}
	if b.guildID != "" && m.GuildID != "" && m.GuildID != b.guildID {
		return
	}

	content := strings.TrimSpace(m.Content)
	if content == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
	defer cancel()

	var reply string
	if strings.EqualFold(content, strategyCommand) {
		strategy, err := b.responder.Strategy(ctx, m.ChannelID)
		if err != nil {
			slog.Error("discord strategy failed", "channel", m.ChannelID, "err", err)
			reply = "Sorry, I couldn't pick a strategy right now. Please try again."
		} else {
			reply = "💡 **" + strategy + "**"
		}
	} else {
		resp, _, err := b.responder.Respond(ctx, m.ChannelID, "discord", content)
		if err != nil {
			slog.Error("discord turn failed", "channel", m.ChannelID, "err", err)
			reply = "Sorry, something went wrong on my end. I'm still here — please try again."
		} else {
			reply = resp.Text
		}
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, reply); err != nil {
		slog.Warn("discord send failed", "channel", m.ChannelID, "err", err)
	}
}
