package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// session abstracts the discordgo.Session methods we use, enabling test mocks.
type session interface {
	Open() error
	Close() error
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordAdapter posts digests to a Discord channel over the Gateway.
type DiscordAdapter struct {
	sess      session
	channelID string

	mu     sync.Mutex
	opened bool
}

// NewDiscord creates a Discord digest adapter for the given bot token and
// channel. The gateway connection is opened lazily on first send.
func NewDiscord(botToken, channelID string) (*DiscordAdapter, error) {
	s, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("notify: discord session: %w", err)
	}
	return &DiscordAdapter{sess: s, channelID: channelID}, nil
}

// Send posts the digest as a plain text message.
func (a *DiscordAdapter) Send(ctx context.Context, d Digest) error {
	if err := a.ensureOpen(); err != nil {
		return err
	}
	_, err := a.sess.ChannelMessageSend(a.channelID, FormatDigest(d), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("notify: discord post to %s: %w", a.channelID, err)
	}
	return nil
}

// Close shuts down the gateway connection if one was opened.
func (a *DiscordAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.opened {
		return nil
	}
	a.opened = false
	return a.sess.Close()
}

func (a *DiscordAdapter) ensureOpen() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.opened {
		return nil
	}
	if err := a.sess.Open(); err != nil {
		return fmt.Errorf("notify: discord connect: %w", err)
	}
	a.opened = true
	return nil
}
