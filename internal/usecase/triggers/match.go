package triggers

import (
	"strings"

	"event-ping-bot/internal/domain"
)

// Match проверяет текст сообщения против правила и возвращает сработавшую фразу.
// Фразы сравниваются без учёта регистра, упоминание роли — точным вхождением.
func Match(rule domain.TriggerRule, content string) (string, bool) {
	text := strings.TrimSpace(content)
	if text == "" {
		return "", false
	}
	lowered := strings.ToLower(text)
	for _, phrase := range rule.Phrases {
		if phrase == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(phrase)) {
			return phrase, true
		}
	}
	if rule.RoleID != "" {
		token := rule.MentionToken()
		if strings.Contains(text, token) {
			return token, true
		}
	}
	return "", false
}
