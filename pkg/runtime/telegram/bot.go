package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/hr-tools/punchbook/pkg/models/domain"
	"github.com/hr-tools/punchbook/pkg/services/attendance"
)

const startReply = "Welcome! Use the commands:\n" +
	"✅ /checkin - record your arrival\n" +
	"❌ /checkout - record your departure"

const retryReply = "Something went wrong, please try again in a moment."

// Options contain configuration for the bot runtime.
type Options struct {
	Token    string
	Recorder attendance.Recorder
	// PollTimeout is the long-polling timeout in seconds.
	PollTimeout int
}

// Bot is the chat transport: it receives /checkin and /checkout
// commands and forwards the recorder's reply verbatim.
type Bot struct {
	api      *tgbotapi.BotAPI
	recorder attendance.Recorder
	timeout  int
}

func NewBot(opts Options) (*Bot, error) {
	if opts.Recorder == nil {
		return nil, fmt.Errorf("recorder is required")
	}
	api, err := tgbotapi.NewBotAPI(opts.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram authorization: %w", err)
	}

	timeout := opts.PollTimeout
	if timeout <= 0 {
		timeout = 60
	}
	return &Bot{api: api, recorder: opts.Recorder, timeout: timeout}, nil
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.timeout
	updates := b.api.GetUpdatesChan(cfg)

	logger.Info().Str("bot", b.api.Self.UserName).Msg("bot is running")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handle(ctx, update)
		}
	}
}

func (b *Bot) handle(ctx context.Context, update tgbotapi.Update) {
	logger := zerolog.Ctx(ctx)

	msg := update.Message
	if msg == nil || msg.From == nil || !msg.IsCommand() {
		return
	}

	var reply string
	switch cmd := msg.Command(); cmd {
	case "start":
		reply = startReply
	case string(domain.ActionCheckIn), string(domain.ActionCheckOut):
		user := msg.From.UserName
		if user == "" {
			user = msg.From.FirstName
		}
		result, err := b.recorder.Record(ctx, domain.Action(cmd), user, time.Now())
		if err != nil {
			logger.Error().
				Err(err).
				Str("command", cmd).
				Str("user", user).
				Msg("failed to record attendance")
			reply = retryReply
		} else {
			reply = result
		}
	default:
		return
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		logger.Error().Err(err).Msg("failed to send reply")
	}
}
