package telegram

import "testing"

func TestNewBot_EmptyToken(t *testing.T) {
	bot, err := NewBot("", "123456")
	if err != nil {
		t.Fatalf("expected no error for empty token, got: %v", err)
	}
	if bot == nil {
		t.Fatal("expected bot to be non-nil")
	}
	if !bot.disabled {
		t.Error("expected bot to be disabled when token is empty")
	}
}

func TestNewBot_InvalidChatID(t *testing.T) {
	_, err := NewBot("fake-token", "not-a-number")
	if err == nil {
		t.Fatal("expected error for invalid chat ID")
	}
}

func TestBot_DisabledMode(t *testing.T) {
	bot := &Bot{disabled: true}

	tests := []struct {
		name string
		fn   func() error
	}{
		{"SendMessage", func() error { return bot.SendMessage("test") }},
		{"SendAlert", func() error { return bot.SendAlert("Title", "body") }},
		{"NotifyStarted", bot.NotifyStarted},
		{"NotifyStopped", bot.NotifyStopped},
		{"NotifyStreak", func() error {
			return bot.NotifyStreak("Knicks 53 🔥 @ Celtics 53 🔥 - Halftime")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); err != nil {
				t.Errorf("expected no error from disabled bot, got: %v", err)
			}
		})
	}
}

func TestEscapeMarkdown(t *testing.T) {
	got := escapeMarkdown("Knicks (NY) - 5.0%!")
	want := "Knicks \\(NY\\) \\- 5\\.0%\\!"
	if got != want {
		t.Errorf("escapeMarkdown = %q, want %q", got, want)
	}
}
