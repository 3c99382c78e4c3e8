package discord

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"event-ping-bot/internal/domain"
)

// EventSink принимает нормализованные события.
type EventSink interface {
	Enqueue(ctx context.Context, ev domain.InboundEvent) error
}

// Gateway подключается к Discord и передаёт события в EventSink.
// Обработчики discordgo работают в своих горутинах, порядок обработки
// обеспечивает очередь EventSink.
type Gateway struct {
	session *discordgo.Session
	sink    EventSink
	log     zerolog.Logger
	newID   func() string
	now     func() time.Time

	ctx          context.Context
	started      atomic.Bool
	disconnected atomic.Bool
	removers     []func()
}

// NewSession создаёт сессию бота с нужными интентами и кэшем сообщений.
func NewSession(token string, messageCacheSize int) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsMessageContent |
		discordgo.IntentsGuildMembers
	s.State.MaxMessageCount = messageCacheSize
	return s, nil
}

// NewGateway создаёт шлюз поверх готовой сессии.
func NewGateway(session *discordgo.Session, sink EventSink, log zerolog.Logger) *Gateway {
	return &Gateway{
		session: session,
		sink:    sink,
		log:     log,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// Open регистрирует обработчики и открывает websocket-соединение.
func (g *Gateway) Open(ctx context.Context) error {
	g.ctx = ctx
	g.removers = append(g.removers,
		g.session.AddHandler(g.onMessageCreate),
		g.session.AddHandler(g.onMessageUpdate),
		g.session.AddHandler(g.onMessageDelete),
		g.session.AddHandler(g.onMemberAdd),
		g.session.AddHandler(g.onMemberRemove),
		g.session.AddHandler(g.onReady),
		g.session.AddHandler(g.onResumed),
		g.session.AddHandler(g.onConnect),
		g.session.AddHandler(g.onDisconnect),
	)
	if err := g.session.Open(); err != nil {
		return fmt.Errorf("discord open: %w", err)
	}
	return nil
}

// Close снимает обработчики и закрывает соединение.
func (g *Gateway) Close() error {
	for _, remove := range g.removers {
		remove()
	}
	g.removers = nil
	return g.session.Close()
}

func (g *Gateway) channelName(channelID string) string {
	if g.session == nil || g.session.State == nil {
		return ""
	}
	ch, err := g.session.State.Channel(channelID)
	if err != nil || ch == nil {
		return ""
	}
	return ch.Name
}

func (g *Gateway) onMessageCreate(_ *discordgo.Session, m *discordgo.MessageCreate) {
	g.publish(messageCreated(g.newID(), m.Message, g.channelName(m.ChannelID)))
}

func (g *Gateway) onMessageUpdate(_ *discordgo.Session, m *discordgo.MessageUpdate) {
	g.publish(messageEdited(g.newID(), m.Message, m.BeforeUpdate))
}

func (g *Gateway) onMessageDelete(_ *discordgo.Session, m *discordgo.MessageDelete) {
	g.publish(messageDeleted(g.newID(), m.Message, m.BeforeDelete))
}

func (g *Gateway) onMemberAdd(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
	g.publish(memberJoined(g.newID(), m.Member))
}

func (g *Gateway) onMemberRemove(_ *discordgo.Session, m *discordgo.GuildMemberRemove) {
	g.publish(memberLeft(g.newID(), m.Member))
}

// onReady сообщает о запуске только один раз, повторный Ready — это новая
// сессия после обрыва.
func (g *Gateway) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	g.disconnected.Store(false)
	if r.User != nil {
		g.log.Info().Str("user", userTag(r.User)).Msg("🟢 бот авторизован")
	}
	state := domain.ConnectionConnected
	if g.started.Swap(true) {
		state = domain.ConnectionResumed
	}
	g.publish(connectionChanged(g.newID(), state, g.now()))
}

func (g *Gateway) onResumed(_ *discordgo.Session, _ *discordgo.Resumed) {
	g.disconnected.Store(false)
	g.started.Store(true)
	g.publish(connectionChanged(g.newID(), domain.ConnectionResumed, g.now()))
}

// onConnect после обрыва означает, что discordgo восстанавливает сессию.
func (g *Gateway) onConnect(_ *discordgo.Session, _ *discordgo.Connect) {
	if g.disconnected.Load() {
		g.publish(connectionChanged(g.newID(), domain.ConnectionReconnecting, g.now()))
	}
}

func (g *Gateway) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	if g.disconnected.Swap(true) {
		return
	}
	g.log.Warn().Msg("соединение с Discord потеряно")
	g.publish(connectionChanged(g.newID(), domain.ConnectionDisconnected, g.now()))
}

func (g *Gateway) publish(ev domain.InboundEvent) {
	ctx := g.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := g.sink.Enqueue(ctx, ev); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrStopped) {
			return
		}
		g.log.Warn().Err(err).Str("event_id", ev.ID()).Str("kind", ev.Kind()).Msg("событие не поставлено в очередь")
	}
}
