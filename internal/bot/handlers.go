package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/statbot/internal/service"
)

// ActivityLog records who asked what; a nil log disables recording.
type ActivityLog interface {
	Record(username, fullName, rule, query string)
}

type Handler struct {
	router   *service.Router
	activity ActivityLog
}

func NewHandler(router *service.Router, activity ActivityLog) *Handler {
	return &Handler{router: router, activity: activity}
}

const helpText = `Ask in plain words, no commands needed:
• 'YPL1 ladder' or 'u16 ypl2 table'
• 'top scorers for heidelberg'
• 'yellow cards u15' or 'coach red cards'
• 'missing scores', 'missing scores round 5'
• 'today's results', 'who scored today', 'who lost today'
• 'stats for <player or team>'
• 'heidelberg vs bulleen'
• 'lineup for heidelberg u16 vs avondale'
• 'my next match', 'upcoming fixtures'
• 'dual registrations'
• 'YPL2 overview' or 'club rankings ysl nw'`

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to StatBot! Ask me about the league in plain words - try 'YPL1 ladder' or 'top scorers u16'. Use /help for more examples."
	case "help":
		msg.Text = helpText
	default:
		msg.Text = "Unknown command. Use /help to see what you can ask."
	}

	return msg
}

// HandleQuery routes free text through the intent table and renders the
// answer for Telegram.
func (h *Handler) HandleQuery(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	msg.ParseMode = "Markdown"

	query := update.Message.Text
	answer, rule := h.router.Process(query)
	if h.activity != nil {
		username, fullName := senderNames(update)
		h.activity.Record(username, fullName, rule, query)
	}

	msg.Text = RenderAnswer(answer)
	return msg
}

func senderNames(update tgbotapi.Update) (string, string) {
	from := update.Message.From
	if from == nil {
		return "", ""
	}
	return from.UserName, strings.TrimSpace(from.FirstName + " " + from.LastName)
}
