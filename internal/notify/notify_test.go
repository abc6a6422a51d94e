package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	slackapi "github.com/slack-go/slack"
)

func digest() Digest {
	return Digest{
		Date:    time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		Created: 3,
		Failed:  0,
	}
}

func TestFormatDigest(t *testing.T) {
	tests := []struct {
		d    Digest
		want string
	}{
		{
			Digest{Date: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), Created: 3},
			"swot-coach: generated 3 task(s) for 2024-03-10",
		},
		{
			Digest{Date: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), Created: 0, Failed: 2},
			"swot-coach: generated 0 task(s) for 2024-03-10 (2 item(s) skipped)",
		},
	}
	for _, tt := range tests {
		if got := FormatDigest(tt.d); got != tt.want {
			t.Errorf("FormatDigest() = %q, want %q", got, tt.want)
		}
	}
}

// mockSlackClient records posted channels and can fail on demand.
type mockSlackClient struct {
	channels []string
	err      error
}

func (m *mockSlackClient) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.err != nil {
		return "", "", m.err
	}
	m.channels = append(m.channels, channelID)
	return channelID, "1", nil
}

func TestSlackAdapter_Send(t *testing.T) {
	mock := &mockSlackClient{}
	a := &SlackAdapter{client: mock, channelID: "C123"}

	if err := a.Send(context.Background(), digest()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(mock.channels) != 1 || mock.channels[0] != "C123" {
		t.Errorf("posted channels = %v, want [C123]", mock.channels)
	}

	mock.err = errors.New("rate limited")
	if err := a.Send(context.Background(), digest()); err == nil {
		t.Error("Send with failing client succeeded, want error")
	}
}

// mockSession records sent messages and open/close calls.
type mockSession struct {
	opens    int
	closes   int
	messages []string
	sendErr  error
}

func (m *mockSession) Open() error  { m.opens++; return nil }
func (m *mockSession) Close() error { m.closes++; return nil }
func (m *mockSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if m.sendErr != nil {
		return nil, m.sendErr
	}
	m.messages = append(m.messages, content)
	return &discordgo.Message{}, nil
}

func TestDiscordAdapter_LazyOpenAndSend(t *testing.T) {
	mock := &mockSession{}
	a := &DiscordAdapter{sess: mock, channelID: "D456"}

	if err := a.Send(context.Background(), digest()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := a.Send(context.Background(), digest()); err != nil {
		t.Fatalf("second Send: %v", err)
	}
	if mock.opens != 1 {
		t.Errorf("opens = %d, want 1 (lazy, once)", mock.opens)
	}
	if len(mock.messages) != 2 {
		t.Errorf("messages = %d, want 2", len(mock.messages))
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if mock.closes != 1 {
		t.Errorf("closes = %d, want 1", mock.closes)
	}
}

// failingAdapter always errors.
type failingAdapter struct{ sends int }

func (f *failingAdapter) Send(ctx context.Context, d Digest) error {
	f.sends++
	return errors.New("down")
}
func (f *failingAdapter) Close() error { return nil }

// recordingAdapter counts successful sends.
type recordingAdapter struct{ sends int }

func (r *recordingAdapter) Send(ctx context.Context, d Digest) error {
	r.sends++
	return nil
}
func (r *recordingAdapter) Close() error { return nil }

func TestFanout_ContinuesPastFailures(t *testing.T) {
	bad := &failingAdapter{}
	good := &recordingAdapter{}
	f := NewFanout(bad, nil, good)

	if f.Len() != 2 {
		t.Errorf("Len = %d, want 2 (nil adapters skipped)", f.Len())
	}

	err := f.Send(context.Background(), digest())
	if err == nil {
		t.Error("Send with failing adapter returned nil, want joined error")
	}
	if bad.sends != 1 || good.sends != 1 {
		t.Errorf("sends = %d/%d, want 1/1 (failure must not block others)", bad.sends, good.sends)
	}
}
