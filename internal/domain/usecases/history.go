package usecases

import (
	"strings"

	"github.com/karakusoft/faqbot/internal/domain/entities"
)

// DefaultMaxHistoryMessages bounds how many prior turns go into the
// prompt; the generator has a finite input window and callers must not
// send unbounded history.
const DefaultMaxHistoryMessages = 60

const historyHeader = "これまでの会話履歴:"

// FormatHistory renders the last maxMessages turns, oldest first, one
// "label: content" line each, under a fixed header. Empty history yields
// an empty string. Pure function.
func FormatHistory(history []entities.Turn, maxMessages int) string {
	if len(history) == 0 {
		return ""
	}
	if maxMessages <= 0 {
		maxMessages = DefaultMaxHistoryMessages
	}
	if len(history) > maxMessages {
		history = history[len(history)-maxMessages:]
	}

	var sb strings.Builder
	sb.WriteString(historyHeader)
	for _, turn := range history {
		sb.WriteString("\n")
		sb.WriteString(roleLabel(turn.Role))
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
	}
	return sb.String()
}

func roleLabel(role string) string {
	switch role {
	case entities.RoleUser:
		return "ユーザー"
	case entities.RoleAssistant:
		return "アシスタント"
	default:
		return role
	}
}
