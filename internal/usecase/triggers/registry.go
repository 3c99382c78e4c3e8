package triggers

import (
	"errors"
	"fmt"
	"strings"

	"event-ping-bot/internal/domain"
)

var (
	// ErrDuplicateChannel возвращается, если на один канал настроено больше одного триггера.
	ErrDuplicateChannel = errors.New("триггер для канала уже задан")
	// ErrRuleInvalid возвращается для триггера без канала или роли.
	ErrRuleInvalid = errors.New("некорректный триггер")
)

// Registry — неизменяемая таблица триггеров по ID канала.
type Registry struct {
	byChannel map[string]domain.TriggerRule
	order     []string
}

// NewRegistry проверяет правила и строит реестр.
func NewRegistry(rules ...domain.TriggerRule) (*Registry, error) {
	r := &Registry{byChannel: make(map[string]domain.TriggerRule, len(rules))}
	for _, rule := range rules {
		rule.ChannelID = strings.TrimSpace(rule.ChannelID)
		rule.RoleID = strings.TrimSpace(rule.RoleID)
		if rule.ChannelID == "" || rule.RoleID == "" {
			return nil, fmt.Errorf("%w: %q без канала или роли", ErrRuleInvalid, rule.Name)
		}
		if rule.Cooldown < 0 {
			return nil, fmt.Errorf("%w: %q с отрицательным кулдауном", ErrRuleInvalid, rule.Name)
		}
		if rule.Cooldown == 0 {
			rule.Cooldown = domain.DefaultCooldown
		}
		if rule.Name == "" {
			rule.Name = rule.ChannelID
		}
		if _, ok := r.byChannel[rule.ChannelID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateChannel, rule.ChannelID)
		}
		rule.Phrases = normalizePhrases(rule.Phrases)
		r.byChannel[rule.ChannelID] = rule
		r.order = append(r.order, rule.ChannelID)
	}
	return r, nil
}

// Lookup возвращает триггер канала. Неизвестный канал — не ошибка.
func (r *Registry) Lookup(channelID string) (domain.TriggerRule, bool) {
	rule, ok := r.byChannel[channelID]
	return rule, ok
}

// Rules возвращает правила в порядке регистрации.
func (r *Registry) Rules() []domain.TriggerRule {
	out := make([]domain.TriggerRule, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byChannel[id])
	}
	return out
}

// Len возвращает количество триггеров.
func (r *Registry) Len() int {
	return len(r.byChannel)
}

func normalizePhrases(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.ToLower(strings.TrimSpace(v))
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
