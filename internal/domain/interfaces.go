package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrChannelUnavailable — канал не найден в кэше шлюза, отправка пропускается.
	ErrChannelUnavailable = errors.New("канал недоступен")
	// ErrNoticeDropped — уведомление отброшено из-за очереди на отправку.
	ErrNoticeDropped = errors.New("уведомление отброшено")
	// ErrStopped — обработка событий остановлена.
	ErrStopped = errors.New("обработка событий остановлена")
)

// Sender доставляет уведомление в канал платформы.
type Sender interface {
	Send(ctx context.Context, channelID string, payload Payload) error
}

// CooldownStore хранит момент, после которого триггер снова может сработать.
type CooldownStore interface {
	IsReady(key string, now time.Time) bool
	Arm(key string, now time.Time, d time.Duration)
}

// TriggerLookup возвращает триггер, привязанный к каналу.
type TriggerLookup interface {
	Lookup(channelID string) (TriggerRule, bool)
}
