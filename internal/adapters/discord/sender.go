package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"event-ping-bot/internal/domain"
	"event-ping-bot/internal/infra/metrics"
)

// ErrNoChannel возвращается при отправке без ID канала.
var ErrNoChannel = errors.New("discord: не задан канал")

// DefaultMaxDelay — сколько запись журнала может ждать своей очереди.
const DefaultMaxDelay = 10 * time.Second

// messageAPI — часть discordgo.Session, нужная для отправки.
type messageAPI interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// channelResolver — кэш каналов шлюза, обычно *discordgo.State.
type channelResolver interface {
	Channel(channelID string) (*discordgo.Channel, error)
}

// Sender отправляет уведомления в каналы Discord. Пинги уходят сразу,
// остальные уведомления проходят через общий лимитер.
type Sender struct {
	api      messageAPI
	channels channelResolver
	limiter  *rate.Limiter
	maxDelay time.Duration
}

// NewSender создаёт отправителя. channels == nil отключает проверку канала,
// rps <= 0 отключает ограничение частоты, maxDelay <= 0 заменяется на DefaultMaxDelay.
func NewSender(api messageAPI, channels channelResolver, rps int, maxDelay time.Duration) *Sender {
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	s := &Sender{api: api, channels: channels, maxDelay: maxDelay}
	if rps > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(rps), rps)
	}
	return s
}

// Send реализует domain.Sender.
func (s *Sender) Send(ctx context.Context, channelID string, payload domain.Payload) error {
	if strings.TrimSpace(channelID) == "" {
		return ErrNoChannel
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.resolvable(channelID) {
		return fmt.Errorf("%s: %w", channelID, domain.ErrChannelUnavailable)
	}
	// пинги уже ограничены кулдауном и не ждут записей журнала
	if payload.Mention == "" {
		if err := s.wait(ctx); err != nil {
			return err
		}
	}
	start := time.Now()
	_, err := s.api.ChannelMessageSendComplex(channelID, BuildMessage(payload), discordgo.WithContext(ctx))
	metrics.ObserveNetworkRequest("discord", "send_message", channelID, start, err)
	if err != nil {
		return fmt.Errorf("send to %s: %w", channelID, err)
	}
	return nil
}

func (s *Sender) resolvable(channelID string) bool {
	if s.channels == nil {
		return true
	}
	ch, err := s.channels.Channel(channelID)
	return err == nil && ch != nil
}

// wait ждёт токен лимитера, но не дольше maxDelay.
func (s *Sender) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	r := s.limiter.Reserve()
	if !r.OK() {
		return domain.ErrNoticeDropped
	}
	delay := r.Delay()
	if delay > s.maxDelay {
		r.Cancel()
		return fmt.Errorf("%w: ожидание %s", domain.ErrNoticeDropped, delay)
	}
	if delay == 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return fmt.Errorf("rate limit: %w", ctx.Err())
	}
}

// BuildMessage переводит Payload в сообщение Discord: текст с упоминанием и эмбед.
func BuildMessage(p domain.Payload) *discordgo.MessageSend {
	msg := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       Truncate(p.Title, embedTitleLimit),
			Description: Truncate(p.Body, embedDescription),
			Color:       int(p.Color),
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
		}},
		// без явного разрешения упоминания из текста пользователей не срабатывают
		AllowedMentions: &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}},
	}
	if p.Mention != "" {
		msg.Content = Truncate(p.Body, contentLimit)
		msg.AllowedMentions.Roles = []string{roleID(p.Mention)}
		msg.Embeds = nil
	}
	return msg
}

func roleID(mention string) string {
	return strings.TrimSuffix(strings.TrimPrefix(mention, "<@&"), ">")
}
