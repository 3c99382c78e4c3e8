package domain

import (
	"fmt"
	"time"
)

// DefaultCooldown — минимальный интервал между двумя пингами одного триггера.
const DefaultCooldown = 5 * time.Minute

// TriggerRule описывает триггер: канал, роль и фразы, на которые он реагирует.
type TriggerRule struct {
	Name      string
	ChannelID string
	RoleID    string
	Phrases   []string
	Cooldown  time.Duration
	Reply     string
}

// Key возвращает ключ состояния кулдауна. Один триггер на канал, поэтому ключ — ID канала.
func (r TriggerRule) Key() string {
	return r.ChannelID
}

// MentionToken возвращает каноническое упоминание роли.
func (r TriggerRule) MentionToken() string {
	return RoleMention(r.RoleID)
}

// RoleMention формирует токен упоминания роли в формате Discord.
func RoleMention(roleID string) string {
	return fmt.Sprintf("<@&%s>", roleID)
}

// ChannelMention формирует ссылку на канал в формате Discord.
func ChannelMention(channelID string) string {
	return fmt.Sprintf("<#%s>", channelID)
}

// ConnectionState — состояние подключения бота к шлюзу.
type ConnectionState string

const (
	ConnectionConnected    ConnectionState = "connected"
	ConnectionResumed      ConnectionState = "resumed"
	ConnectionReconnecting ConnectionState = "reconnecting"
	ConnectionDisconnected ConnectionState = "disconnected"
)

// ActivityKind описывает тип записи в журнале активности.
type ActivityKind string

const (
	ActivityMessageSent    ActivityKind = "message_sent"
	ActivityMessageEdited  ActivityKind = "message_edited"
	ActivityMessageDeleted ActivityKind = "message_deleted"
	ActivityMemberJoined   ActivityKind = "member_joined"
	ActivityMemberLeft     ActivityKind = "member_left"
	ActivityConnection     ActivityKind = "connection"
)

// ActivityDetail содержит поля события, которые попадают в журнал.
type ActivityDetail struct {
	AuthorTag string
	ChannelID string
	Content   string
	Before    string
	After     string
	UserTag   string
	State     ConnectionState
	At        time.Time
}

// Color — цветовая метка уведомления.
type Color int

const (
	ColorBlue   Color = 0x3498DB
	ColorGreen  Color = 0x2ECC71
	ColorYellow Color = 0xF1C40F
	ColorOrange Color = 0xE67E22
	ColorRed    Color = 0xE74C3C
	ColorPurple Color = 0x9B59B6
)

// Payload — отформатированное тело уведомления.
// Непустой Mention — токен роли: такое уведомление уходит обычным текстом,
// иначе роль не получит пинг.
type Payload struct {
	Title   string
	Body    string
	Color   Color
	Mention string
}

// NoticePurpose помечает назначение уведомления для логов и метрик.
type NoticePurpose string

const (
	PurposePing     NoticePurpose = "ping"
	PurposeMirror   NoticePurpose = "mirror"
	PurposeActivity NoticePurpose = "activity"
)

// OutboundNotice — уведомление, готовое к отправке.
type OutboundNotice struct {
	ChannelID string
	Payload   Payload
	Purpose   NoticePurpose
}
