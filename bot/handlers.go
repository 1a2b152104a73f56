package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/flwsb/pregnancy-nutrition-bot/models"
	"github.com/flwsb/pregnancy-nutrition-bot/services"
	"github.com/flwsb/pregnancy-nutrition-bot/utils"
)

const helpText = `📖 Pregnancy Nutrition Tracker

Commands:
/start - Welcome message
/diary - Today's nutrition summary
/weekly - Weekly nutrition report
/help - This help

How it works:
1. 📸 Send a photo of your meal
2. 🤖 The AI identifies the foods
3. 📊 Nutrients are tracked automatically
4. 💡 Get personalized recommendations

You can also:
• Describe a meal in text ("I had chicken with rice")
• Send a voice message describing your meal
• Ask questions ("What nutrients am I missing?")

Tips: take clear, well-lit photos showing every part of the meal.`

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	text := fmt.Sprintf(`👋 Welcome to the Pregnancy Nutrition Tracker!

🤰 You are in week %d (%s trimester) - I'm here to help!

Send me a photo of your meal and I'll analyze it and track your nutrients.

%s

Commands: /diary for today's summary, /weekly for the weekly report, /help for help.`,
		b.profile.CurrentWeek(), b.profile.TrimesterName(), b.profile.FocusNutrients())
	b.reply(msg.Chat.ID, text)
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	b.reply(msg.Chat.ID, helpText)
}

func (b *Bot) handleDiary(msg *tgbotapi.Message) {
	start, end := services.DayRange(time.Now())
	targets := b.profile.AdjustedDailyTargets(b.nutrition.DailyRequirements())
	b.sendSummary(msg, models.PeriodDay, start, end, targets)
}

func (b *Bot) handleWeekly(msg *tgbotapi.Message) {
	start, end := services.WeekRange(time.Now())
	targets := b.profile.AdjustedWeeklyTargets(b.nutrition.WeeklyRequirements())
	b.sendSummary(msg, models.PeriodWeek, start, end, targets)
}

func (b *Bot) sendSummary(msg *tgbotapi.Message, period models.Period, start, end time.Time, targets models.Targets) {
	userID := msg.From.ID

	entries, err := b.diary.QueryByUserAndRange(userID, start, end)
	if err != nil {
		b.log.WithError(err).Error("query diary")
		b.reply(msg.Chat.ID, "❌ Sorry, I couldn't retrieve your diary. Please try again later.")
		return
	}

	report := b.analyzer.Summarize(userID, period, entries, targets)

	recommendations := ""
	if len(report.Missing()) > 0 {
		recommendations, err = b.openai.PhraseRecommendation(context.Background(), report, b.profile.ContextString())
		if err != nil {
			// Templated fallback so the bot never goes silent.
			b.log.WithError(err).Warn("phrase recommendation failed, using fallback")
			recommendations = services.FallbackRecommendation(report, b.nutrition.Suggestions(report.Missing()))
		}
	}

	b.reply(msg.Chat.ID, b.analyzer.FormatSummary(report, recommendations))
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	// Telegram sends several resolutions; the last is the largest.
	photo := msg.Photo[len(msg.Photo)-1]
	image, err := b.downloadFile(photo.FileID)
	if err != nil {
		b.log.WithError(err).Error("download photo")
		b.reply(msg.Chat.ID, "❌ Sorry, I couldn't download your photo. Please try again.")
		return
	}

	foods, err := b.openai.IdentifyFoods(ctx, image)
	if err != nil {
		b.log.WithError(err).Error("identify foods")
		b.reply(msg.Chat.ID, "❌ Sorry, I couldn't analyze your photo. Please try again with a clearer picture.")
		return
	}

	// A caption like "yesterday's lunch" back-dates the entry.
	b.logMeal(msg, foods, mealTimestamp(msg.Caption))
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case looksLikeQuestion(msg.Text):
		b.answerQuestion(ctx, msg, msg.Text)
	case looksLikeMeal(msg.Text):
		foods, err := b.openai.IdentifyFoodsFromText(ctx, msg.Text)
		if err != nil {
			b.log.WithError(err).Error("identify foods from text")
			b.reply(msg.Chat.ID, "❌ Sorry, I couldn't analyze that meal. Please try describing it differently.")
			return
		}
		b.logMeal(msg, foods, mealTimestamp(msg.Text))
	default:
		b.reply(msg.Chat.ID, helpText)
	}
}

func (b *Bot) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	audio, err := b.downloadFile(msg.Voice.FileID)
	if err != nil {
		b.log.WithError(err).Error("download voice")
		b.reply(msg.Chat.ID, "❌ Sorry, I couldn't process your voice message. Please try again or send a text message.")
		return
	}

	transcript, err := b.openai.TranscribeVoice(ctx, audio)
	if err != nil {
		b.log.WithError(err).Error("transcribe voice")
		b.reply(msg.Chat.ID, "❌ Sorry, I couldn't process your voice message. Please try again or send a text message.")
		return
	}

	switch {
	case looksLikeQuestion(transcript):
		b.answerQuestion(ctx, msg, transcript)
	case looksLikeMeal(transcript):
		foods, err := b.openai.IdentifyFoodsFromText(ctx, transcript)
		if err != nil {
			b.log.WithError(err).Error("identify foods from voice")
			b.reply(msg.Chat.ID, "❌ Sorry, I couldn't analyze that meal. Please try describing it differently.")
			return
		}
		b.logMeal(msg, foods, mealTimestamp(transcript))
	default:
		b.reply(msg.Chat.ID, fmt.Sprintf("📝 I heard: %q\n\nDescribe a meal, or ask something like \"What nutrients am I missing?\".", transcript))
	}
}

// answerQuestion answers a nutrition question grounded in today's intake.
func (b *Bot) answerQuestion(ctx context.Context, msg *tgbotapi.Message, question string) {
	start, end := services.DayRange(time.Now())
	targets := b.profile.AdjustedDailyTargets(b.nutrition.DailyRequirements())

	entries, err := b.diary.QueryByUserAndRange(msg.From.ID, start, end)
	if err != nil {
		b.log.WithError(err).Error("query diary for question")
		b.reply(msg.Chat.ID, "❌ Sorry, I couldn't check your nutrition status. Please try again later.")
		return
	}
	report := b.analyzer.Summarize(msg.From.ID, models.PeriodDay, entries, targets)

	answer, err := b.openai.AnswerQuestion(ctx, question, report, b.profile.ContextString())
	if err != nil {
		b.log.WithError(err).Error("answer nutrition question")
		b.reply(msg.Chat.ID, "❌ Sorry, I couldn't analyze your nutrition status right now. Try again, or use /diary for today's summary.")
		return
	}
	b.reply(msg.Chat.ID, answer)
}

// mealTimestamp resolves the entry time from a meal text or photo caption.
func mealTimestamp(text string) time.Time {
	if at, ok := services.ParseTimeContext(text, time.Now()); ok {
		return at
	}
	return time.Now()
}

// logMeal runs the shared tail of the logging pipeline: reference lookup,
// safety screen, transactional insert, confirmation reply. An empty food
// list writes nothing and tells the user so explicitly.
func (b *Bot) logMeal(msg *tgbotapi.Message, foods []services.IdentifiedFood, at time.Time) {
	if len(foods) == 0 {
		b.reply(msg.Chat.ID, "❌ I couldn't identify any foods. Could you try a clearer photo or describe the meal?")
		return
	}

	entries := make([]*models.FoodEntry, 0, len(foods))
	var allWarnings []utils.Warning

	for _, f := range foods {
		// Unknown foods are stored with a zero snapshot: the item is part
		// of the diary even when the reference table can't price it.
		nutrients, _ := b.nutrition.Estimate(f.Name, f.Quantity, f.Unit)
		warnings := utils.AssessFoodSafety(f.Name)
		allWarnings = append(allWarnings, warnings...)

		entries = append(entries, &models.FoodEntry{
			UserID:    msg.From.ID,
			Timestamp: at,
			FoodName:  f.Name,
			Quantity:  f.Quantity,
			Unit:      f.Unit,
			Nutrients: nutrients,
			Safe:      len(warnings) == 0,
			Warnings:  strings.Join(utils.WarningMessages(warnings), "; "),
		})
	}

	if err := b.diary.InsertAll(entries); err != nil {
		b.log.WithError(err).Error("insert meal")
		switch {
		case errors.Is(err, services.ErrValidation):
			b.reply(msg.Chat.ID, "❌ I couldn't log that meal. Could you describe it again?")
		case errors.Is(err, services.ErrStore):
			b.reply(msg.Chat.ID, "❌ Sorry, I couldn't save your meal. Please try again later.")
		default:
			b.reply(msg.Chat.ID, "❌ Something went wrong. Please try again.")
		}
		return
	}

	b.reply(msg.Chat.ID, formatMealSaved(entries, allWarnings, at))
}

func formatMealSaved(entries []*models.FoodEntry, warnings []utils.Warning, at time.Time) string {
	var totals models.Nutrients
	var sb strings.Builder

	sb.WriteString("✅ Meal saved!\n")
	if at.Format("2006-01-02") != time.Now().Format("2006-01-02") {
		fmt.Fprintf(&sb, "📅 Logged for: %s\n", at.Format("2006-01-02 15:04"))
	}
	sb.WriteString("\n📝 Identified foods:\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "• %s (%.0f %s)\n", e.FoodName, e.Quantity, e.Unit)
		totals.Add(e.Nutrients)
	}

	sb.WriteString("\n📊 Key nutrients:\n")
	fmt.Fprintf(&sb, "• Calories: %.0f kcal\n", totals.Calories)
	fmt.Fprintf(&sb, "• Protein: %.1fg\n", totals.ProteinG)
	fmt.Fprintf(&sb, "• Iron: %.1fmg\n", totals.IronMg)
	fmt.Fprintf(&sb, "• Folate: %.1fmcg\n", totals.FolateMcg)
	fmt.Fprintf(&sb, "• Calcium: %.1fmg\n", totals.CalciumMg)

	if len(warnings) > 0 {
		sb.WriteString("\n⚠️ Safety notes:\n")
		for _, w := range warnings {
			fmt.Fprintf(&sb, "• %s\n", w.Message)
		}
	}

	sb.WriteString("\n💡 Use /diary to see today's totals and recommendations!")
	return sb.String()
}

func (b *Bot) downloadFile(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}

	resp, err := b.downloader.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("fetch file: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

var mealKeywords = []string{
	"ate", "had", "eating", "meal", "breakfast", "lunch", "dinner",
	"snack", "food", "chicken", "rice", "salad", "soup", "bread",
	"egg", "yogurt", "fruit", "fish", "cheese",
}

var questionKeywords = []string{
	"nutrient", "missing", "what should i eat", "what am i missing",
	"what do i need", "recommendation", "suggestion", "deficient",
	"low in", "need more", "pregnancy week", "what week", "trimester",
}

// looksLikeQuestion decides whether free text is a nutrition or pregnancy
// question. Checked before the meal gate, so "what should I eat for
// dinner?" is answered, not logged.
func looksLikeQuestion(text string) bool {
	return containsAny(text, questionKeywords)
}

// looksLikeMeal decides whether free text is a meal description worth
// sending to the model, or just conversation that gets the help message.
func looksLikeMeal(text string) bool {
	return containsAny(text, mealKeywords)
}

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
