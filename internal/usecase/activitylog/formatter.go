package activitylog

import (
	"fmt"
	"strings"

	"event-ping-bot/internal/domain"
)

const (
	unknownAuthor = "Unknown"
	emptyContent  = "*No text*"
)

// Format строит уведомление для журнала активности. Заголовок и цвет
// фиксированы для каждого типа события.
func Format(kind domain.ActivityKind, d domain.ActivityDetail) domain.Payload {
	switch kind {
	case domain.ActivityMessageSent:
		return domain.Payload{
			Title: "💬 Message Sent",
			Body:  lines(userLine(d.AuthorTag), channelLine(d.ChannelID), "**Content:** "+content(d.Content)),
			Color: domain.ColorBlue,
		}
	case domain.ActivityMessageEdited:
		return domain.Payload{
			Title: "✏️ Message Edited",
			Body: lines(
				userLine(d.AuthorTag),
				channelLine(d.ChannelID),
				"",
				"**Before:** "+content(d.Before),
				"**After:** "+content(d.After),
			),
			Color: domain.ColorYellow,
		}
	case domain.ActivityMessageDeleted:
		return domain.Payload{
			Title: "🗑️ Message Deleted",
			Body:  lines(userLine(d.AuthorTag), channelLine(d.ChannelID), "**Content:** "+content(d.Content)),
			Color: domain.ColorOrange,
		}
	case domain.ActivityMemberJoined:
		return domain.Payload{
			Title: "📥 User Joined",
			Body:  "**User:** " + author(d.UserTag),
			Color: domain.ColorGreen,
		}
	case domain.ActivityMemberLeft:
		return domain.Payload{
			Title: "📤 User Left",
			Body:  "**User:** " + author(d.UserTag),
			Color: domain.ColorRed,
		}
	case domain.ActivityConnection:
		return formatConnection(d)
	default:
		return domain.Payload{Title: string(kind), Body: emptyContent, Color: domain.ColorBlue}
	}
}

// FormatPing строит уведомление о срабатывании триггера.
func FormatPing(rule domain.TriggerRule) domain.Payload {
	reply := strings.TrimSpace(rule.Reply)
	if reply == "" {
		reply = "Your event was pinged!"
	}
	mention := rule.MentionToken()
	return domain.Payload{
		Title:   "📣 Role Pinged",
		Body:    fmt.Sprintf("Hey %s! %s", mention, reply),
		Color:   domain.ColorPurple,
		Mention: mention,
	}
}

func formatConnection(d domain.ActivityDetail) domain.Payload {
	switch d.State {
	case domain.ConnectionConnected:
		body := "**Bot started successfully**"
		if !d.At.IsZero() {
			body += fmt.Sprintf(" at <t:%d:T>", d.At.Unix())
		}
		return domain.Payload{Title: "🟢 Bot Connected", Body: body, Color: domain.ColorGreen}
	case domain.ConnectionResumed:
		body := "**Connection to Discord restored**"
		if !d.At.IsZero() {
			body += fmt.Sprintf(" at <t:%d:T>", d.At.Unix())
		}
		return domain.Payload{Title: "🟢 Bot Reconnected", Body: body, Color: domain.ColorGreen}
	case domain.ConnectionReconnecting:
		return domain.Payload{Title: "🔄 Bot Reconnecting", Body: "**Bot reconnecting to Discord...**", Color: domain.ColorYellow}
	case domain.ConnectionDisconnected:
		return domain.Payload{Title: "🔴 Bot Disconnected", Body: "**Bot disconnected from Discord!**", Color: domain.ColorRed}
	default:
		return domain.Payload{Title: "Connection", Body: "**State:** " + string(d.State), Color: domain.ColorBlue}
	}
}

func userLine(tag string) string {
	return "**User:** " + author(tag)
}

func channelLine(channelID string) string {
	if strings.TrimSpace(channelID) == "" {
		return "**Channel:** " + unknownAuthor
	}
	return "**Channel:** " + domain.ChannelMention(channelID)
}

func author(tag string) string {
	if strings.TrimSpace(tag) == "" {
		return unknownAuthor
	}
	return tag
}

func content(s string) string {
	if strings.TrimSpace(s) == "" {
		return emptyContent
	}
	return s
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}
