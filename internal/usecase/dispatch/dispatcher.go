package dispatch

import (
	"strings"
	"time"

	"event-ping-bot/internal/domain"
	"event-ping-bot/internal/infra/metrics"
	"event-ping-bot/internal/usecase/activitylog"
	"event-ping-bot/internal/usecase/classify"
)

// Dispatcher превращает результат классификации в уведомления.
// Сетевых вызовов не делает: только меняет кулдаун и возвращает описания.
type Dispatcher struct {
	cooldowns    domain.CooldownStore
	logChannelID string
}

// New создаёт диспетчер. Хранилище кулдаунов принадлежит диспетчеру целиком.
func New(cooldowns domain.CooldownStore, logChannelID string) *Dispatcher {
	return &Dispatcher{cooldowns: cooldowns, logChannelID: strings.TrimSpace(logChannelID)}
}

// Dispatch возвращает 0, 1 или 2 уведомления. Пинг на событие не больше одного.
func (d *Dispatcher) Dispatch(res classify.Result, now time.Time) []domain.OutboundNotice {
	switch res.Kind {
	case classify.TriggerCandidate:
		return d.dispatchTrigger(res, now)
	case classify.LoggableActivity:
		return d.activity(res.Activity)
	default:
		return nil
	}
}

func (d *Dispatcher) dispatchTrigger(res classify.Result, now time.Time) []domain.OutboundNotice {
	rule := res.Rule
	if !d.cooldowns.IsReady(rule.Key(), now) {
		metrics.IncTriggerSuppressed(rule.Name)
		if res.Fallback == nil {
			return nil
		}
		return d.activity(*res.Fallback)
	}

	d.cooldowns.Arm(rule.Key(), now, rule.Cooldown)
	metrics.IncTriggerFired(rule.Name)

	payload := activitylog.FormatPing(rule)
	notices := []domain.OutboundNotice{{
		ChannelID: rule.ChannelID,
		Payload:   payload,
		Purpose:   domain.PurposePing,
	}}
	if d.logChannelID != "" {
		mirror := payload
		// копия в журнале не должна повторно пинговать роль
		mirror.Mention = ""
		notices = append(notices, domain.OutboundNotice{
			ChannelID: d.logChannelID,
			Payload:   mirror,
			Purpose:   domain.PurposeMirror,
		})
	}
	return notices
}

func (d *Dispatcher) activity(a classify.Activity) []domain.OutboundNotice {
	if d.logChannelID == "" {
		return nil
	}
	return []domain.OutboundNotice{{
		ChannelID: d.logChannelID,
		Payload:   activitylog.Format(a.Kind, a.Detail),
		Purpose:   domain.PurposeActivity,
	}}
}
