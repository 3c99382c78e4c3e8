package classify

import (
	"strings"

	"event-ping-bot/internal/domain"
	"event-ping-bot/internal/usecase/triggers"
)

// Kind — итог классификации события.
type Kind int

const (
	NoMatch Kind = iota
	TriggerCandidate
	LoggableActivity
)

func (k Kind) String() string {
	switch k {
	case TriggerCandidate:
		return "trigger_candidate"
	case LoggableActivity:
		return "loggable_activity"
	default:
		return "no_match"
	}
}

// Activity описывает запись для журнала активности.
type Activity struct {
	Kind   domain.ActivityKind
	Detail domain.ActivityDetail
}

// Result — результат классификации.
//
// Для TriggerCandidate поле Fallback содержит запись «сообщение отправлено»,
// которая уходит в журнал, если триггер ещё на кулдауне. Для сообщений из
// канала журнала Fallback пуст.
type Result struct {
	Kind        Kind
	Rule        domain.TriggerRule
	MatchedText string
	Activity    Activity
	Fallback    *Activity
}

// Classifier решает, подходит ли событие для пинга или журнала.
type Classifier struct {
	triggers     domain.TriggerLookup
	logChannelID string
}

// New создаёт классификатор. Пустой logChannelID означает, что журнал не настроен.
func New(lookup domain.TriggerLookup, logChannelID string) *Classifier {
	return &Classifier{triggers: lookup, logChannelID: strings.TrimSpace(logChannelID)}
}

// Classify определяет, что делать с событием.
func (c *Classifier) Classify(ev domain.InboundEvent) Result {
	switch e := ev.(type) {
	case domain.MessageCreated:
		return c.classifyCreated(e)
	case domain.MessageEdited:
		if !e.GuildPresent || e.AuthorIsBot {
			return Result{Kind: NoMatch}
		}
		if e.Before == e.After {
			return Result{Kind: NoMatch}
		}
		return loggable(domain.ActivityMessageEdited, domain.ActivityDetail{
			AuthorTag: e.AuthorTag,
			ChannelID: e.ChannelID,
			Before:    e.Before,
			After:     e.After,
		})
	case domain.MessageDeleted:
		if !e.GuildPresent || e.AuthorIsBot {
			return Result{Kind: NoMatch}
		}
		return loggable(domain.ActivityMessageDeleted, domain.ActivityDetail{
			AuthorTag: e.AuthorTag,
			ChannelID: e.ChannelID,
			Content:   e.Content,
		})
	case domain.MemberJoined:
		return loggable(domain.ActivityMemberJoined, domain.ActivityDetail{UserTag: e.UserTag})
	case domain.MemberLeft:
		return loggable(domain.ActivityMemberLeft, domain.ActivityDetail{UserTag: e.UserTag})
	case domain.ConnectionStateChanged:
		return loggable(domain.ActivityConnection, domain.ActivityDetail{State: e.State, At: e.At})
	default:
		return Result{Kind: NoMatch}
	}
}

func (c *Classifier) classifyCreated(e domain.MessageCreated) Result {
	if !e.GuildPresent || e.AuthorIsBot || e.IsWebhook {
		return Result{Kind: NoMatch}
	}
	chat := c.chatActivity(e)

	if rule, ok := c.triggers.Lookup(e.ChannelID); ok {
		if matched, ok := triggers.Match(rule, e.Content); ok {
			return Result{
				Kind:        TriggerCandidate,
				Rule:        rule,
				MatchedText: matched,
				Fallback:    chat,
			}
		}
	}
	if chat == nil {
		return Result{Kind: NoMatch}
	}
	return Result{Kind: LoggableActivity, Activity: *chat}
}

// chatActivity возвращает запись «сообщение отправлено» или nil для канала журнала.
func (c *Classifier) chatActivity(e domain.MessageCreated) *Activity {
	if c.logChannelID != "" && e.ChannelID == c.logChannelID {
		return nil
	}
	return &Activity{
		Kind: domain.ActivityMessageSent,
		Detail: domain.ActivityDetail{
			AuthorTag: e.AuthorTag,
			ChannelID: e.ChannelID,
			Content:   e.Content,
		},
	}
}

func loggable(kind domain.ActivityKind, detail domain.ActivityDetail) Result {
	return Result{Kind: LoggableActivity, Activity: Activity{Kind: kind, Detail: detail}}
}
