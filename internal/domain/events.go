package domain

import "time"

// InboundEvent — нормализованное событие платформы.
// Набор реализаций закрыт: конкретные типы перечислены ниже.
type InboundEvent interface {
	ID() string
	Kind() string
	inbound()
}

// MessageCreated — новое сообщение в канале.
type MessageCreated struct {
	EventID      string
	AuthorID     string
	AuthorTag    string
	AuthorIsBot  bool
	IsWebhook    bool
	ChannelID    string
	ChannelName  string
	Content      string
	GuildPresent bool
}

// MessageEdited — изменение сообщения.
type MessageEdited struct {
	EventID      string
	AuthorID     string
	AuthorTag    string
	AuthorIsBot  bool
	ChannelID    string
	Before       string
	After        string
	GuildPresent bool
}

// MessageDeleted — удаление сообщения.
type MessageDeleted struct {
	EventID      string
	AuthorID     string
	AuthorTag    string
	AuthorIsBot  bool
	ChannelID    string
	Content      string
	GuildPresent bool
}

// MemberJoined — участник вошёл на сервер.
type MemberJoined struct {
	EventID string
	UserTag string
	GuildID string
}

// MemberLeft — участник покинул сервер.
type MemberLeft struct {
	EventID string
	UserTag string
	GuildID string
}

// ConnectionStateChanged — изменение состояния подключения к шлюзу.
type ConnectionStateChanged struct {
	EventID string
	State   ConnectionState
	At      time.Time
}

func (e MessageCreated) ID() string         { return e.EventID }
func (e MessageEdited) ID() string          { return e.EventID }
func (e MessageDeleted) ID() string         { return e.EventID }
func (e MemberJoined) ID() string           { return e.EventID }
func (e MemberLeft) ID() string             { return e.EventID }
func (e ConnectionStateChanged) ID() string { return e.EventID }

func (MessageCreated) Kind() string         { return "message_created" }
func (MessageEdited) Kind() string          { return "message_edited" }
func (MessageDeleted) Kind() string         { return "message_deleted" }
func (MemberJoined) Kind() string           { return "member_joined" }
func (MemberLeft) Kind() string             { return "member_left" }
func (ConnectionStateChanged) Kind() string { return "connection_state" }

func (MessageCreated) inbound()         {}
func (MessageEdited) inbound()          {}
func (MessageDeleted) inbound()         {}
func (MemberJoined) inbound()           {}
func (MemberLeft) inbound()             {}
func (ConnectionStateChanged) inbound() {}
