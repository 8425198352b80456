package services

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/harusato/meeting-decisions-api/internal/models"
)

// ChatService forwards action items to a team chat channel. Delivery is best
// effort: failures are logged and never surfaced to the flow that created the
// item.
type ChatService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.SugaredLogger
}

// NewChatService creates a ChatService bound to one Telegram chat.
func NewChatService(token string, chatID int64, logger *zap.SugaredLogger) (*ChatService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &ChatService{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}, nil
}

// ForwardActionItem posts a summary of a newly created action item to the
// configured chat.
func (s *ChatService) ForwardActionItem(item *models.ActionItem) {
	msg := tgbotapi.NewMessage(s.chatID, formatActionItem(item))
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := s.bot.Send(msg); err != nil {
		s.logger.Warnw("failed to forward action item to chat", "action_item_id", item.ID, "error", err)
	}
}

func formatActionItem(item *models.ActionItem) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📌 <b>%s</b>\n", html.EscapeString(strings.TrimSpace(item.Title))))
	if assignee := strings.TrimSpace(item.Assignee); assignee != "" {
		sb.WriteString(fmt.Sprintf("👤 %s\n", html.EscapeString(assignee)))
	}
	sb.WriteString(fmt.Sprintf("⏰ due %s\n", item.DueDate.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("🔺 %s", html.EscapeString(item.Priority)))

	return sb.String()
}
