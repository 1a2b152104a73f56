package bot

import (
	"context"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flwsb/pregnancy-nutrition-bot/services"
)

// Bot is the Telegram front end: it receives updates, dispatches commands
// and photos to the services, and sends text back. Stateless per-message
// dispatch; no conversation state is kept between updates.
type Bot struct {
	api *tgbotapi.BotAPI
	log *logrus.Logger

	openai    *services.OpenAIService
	nutrition *services.NutritionService
	diary     *services.DiaryService
	analyzer  *services.AnalyzerService
	profile   *services.ProfileService

	handlers   map[Command]func(*tgbotapi.Message)
	downloader *http.Client

	// send delivers one outgoing message. Indirected so handler behavior
	// can be exercised without a live Bot API connection.
	send func(chatID int64, text string)
}

func New(
	token string,
	log *logrus.Logger,
	openai *services.OpenAIService,
	nutrition *services.NutritionService,
	diary *services.DiaryService,
	analyzer *services.AnalyzerService,
	profile *services.ProfileService,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	b := &Bot{
		api:        api,
		log:        log,
		openai:     openai,
		nutrition:  nutrition,
		diary:      diary,
		analyzer:   analyzer,
		profile:    profile,
		downloader: &http.Client{Timeout: 30 * time.Second},
	}
	b.send = func(chatID int64, text string) {
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			b.log.WithError(err).Error("send reply")
		}
	}
	b.handlers = map[Command]func(*tgbotapi.Message){
		CommandStart:  b.handleStart,
		CommandHelp:   b.handleHelp,
		CommandDiary:  b.handleDiary,
		CommandWeekly: b.handleWeekly,
	}
	return b, nil
}

// Run consumes the long-poll update stream until ctx is cancelled. Each
// update is handled to completion before the next one; outbound API calls
// are bounded by the services' client timeouts.
func (b *Bot) Run(ctx context.Context) error {
	b.log.WithField("username", b.api.Self.UserName).Info("bot authorized")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message != nil {
				b.handleUpdate(ctx, update.Message)
			}
		}
	}
}

// handleUpdate routes one message. A panic in a handler isolates to that
// update: the loop keeps serving other users.
func (b *Bot) handleUpdate(ctx context.Context, msg *tgbotapi.Message) {
	entry := b.log.WithField("request_id", uuid.NewString())

	defer func() {
		if r := recover(); r != nil {
			entry.WithField("panic", r).Error("handler panic recovered")
			b.reply(msg.Chat.ID, "❌ Something went wrong. Please try again.")
		}
	}()

	// Channel posts carry no sender; diary rows are keyed by user.
	if msg.From == nil {
		entry.Warn("message without sender ignored")
		return
	}
	entry = entry.WithField("user_id", msg.From.ID)

	switch {
	case len(msg.Photo) > 0:
		entry.Info("photo received")
		b.handlePhoto(ctx, msg)
	case msg.Voice != nil:
		entry.Info("voice received")
		b.handleVoice(ctx, msg)
	case msg.IsCommand():
		cmd := ParseCommand(msg.Command())
		entry.WithField("command", msg.Command()).Info("command received")
		if handler, ok := b.handlers[cmd]; ok {
			handler(msg)
		} else {
			b.reply(msg.Chat.ID, helpText)
		}
	case msg.Text != "":
		entry.Info("text received")
		b.handleText(ctx, msg)
	default:
		b.reply(msg.Chat.ID, helpText)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(chatID, text)
}
