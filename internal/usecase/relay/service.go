package relay

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"event-ping-bot/internal/domain"
	"event-ping-bot/internal/infra/metrics"
	"event-ping-bot/internal/usecase/classify"
	"event-ping-bot/internal/usecase/dispatch"
)

// ErrStopped возвращается Enqueue после остановки обработки.
var ErrStopped = domain.ErrStopped

// Service принимает события шлюза и обрабатывает их строго по одному.
// Каждое уведомление отправляется отдельной горутиной: ошибка одной
// отправки не влияет на остальные.
type Service struct {
	log        zerolog.Logger
	classifier *classify.Classifier
	dispatcher *dispatch.Dispatcher
	sender     domain.Sender
	now        func() time.Time

	queue chan domain.InboundEvent
	done  chan struct{}
	sends sync.WaitGroup
}

// Option настраивает Service.
type Option func(*Service)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService создаёт обработчик с очередью на queueSize событий.
func NewService(log zerolog.Logger, classifier *classify.Classifier, dispatcher *dispatch.Dispatcher, sender domain.Sender, queueSize int, opts ...Option) *Service {
	if queueSize <= 0 {
		queueSize = 256
	}
	s := &Service{
		log:        log,
		classifier: classifier,
		dispatcher: dispatcher,
		sender:     sender,
		now:        time.Now,
		queue:      make(chan domain.InboundEvent, queueSize),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue ставит событие в очередь. Блокируется, пока в очереди нет места.
func (s *Service) Enqueue(ctx context.Context, ev domain.InboundEvent) error {
	select {
	case <-s.done:
		return ErrStopped
	default:
	}
	select {
	case s.queue <- ev:
		metrics.EventQueueDepth.Set(float64(len(s.queue)))
		return nil
	case <-s.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run обрабатывает очередь до отмены ctx. Вызывается ровно из одной горутины.
func (s *Service) Run(ctx context.Context) error {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.queue:
			metrics.EventQueueDepth.Set(float64(len(s.queue)))
			s.Handle(ctx, ev)
		}
	}
}

// Handle синхронно классифицирует событие и запускает отправку уведомлений.
// Возвращает уведомления, переданные на отправку.
func (s *Service) Handle(ctx context.Context, ev domain.InboundEvent) []domain.OutboundNotice {
	metrics.IncEvent(ev.Kind())
	if m, ok := ev.(domain.MessageCreated); ok && m.GuildPresent && !m.AuthorIsBot {
		s.log.Debug().
			Str("event_id", m.EventID).
			Str("channel", channelName(m)).
			Str("author", m.AuthorTag).
			Str("content", m.Content).
			Msg("сообщение")
	}

	res := s.classifier.Classify(ev)
	notices := s.dispatcher.Dispatch(res, s.now())
	for _, n := range notices {
		if n.Purpose == domain.PurposePing {
			s.log.Info().
				Str("event_id", ev.ID()).
				Str("trigger", res.Rule.Name).
				Str("matched", res.MatchedText).
				Msgf("📣 Pinged %s", res.Rule.MentionToken())
		}
		s.send(ctx, ev.ID(), n)
	}
	return notices
}

// Wait дожидается завершения отправок, запущенных до вызова.
func (s *Service) Wait(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		s.sends.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Service) send(ctx context.Context, eventID string, n domain.OutboundNotice) {
	s.sends.Add(1)
	go func() {
		defer s.sends.Done()
		// отправка не должна обрываться вместе с циклом обработки
		sendCtx := context.WithoutCancel(ctx)
		err := s.sender.Send(sendCtx, n.ChannelID, n.Payload)
		switch {
		case err == nil:
			metrics.IncNoticeSent(string(n.Purpose))
		case errors.Is(err, domain.ErrChannelUnavailable):
			s.log.Debug().Err(err).
				Str("event_id", eventID).
				Str("purpose", string(n.Purpose)).
				Msg("канал недоступен, уведомление пропущено")
		case errors.Is(err, domain.ErrNoticeDropped):
			metrics.IncNoticeDropped(string(n.Purpose))
			s.log.Warn().Err(err).
				Str("event_id", eventID).
				Str("channel", n.ChannelID).
				Str("purpose", string(n.Purpose)).
				Msg("уведомление отброшено")
		default:
			metrics.BotSendErrors.Inc()
			s.log.Error().Err(err).
				Str("event_id", eventID).
				Str("channel", n.ChannelID).
				Str("purpose", string(n.Purpose)).
				Msg("не удалось отправить уведомление")
		}
	}()
}

func channelName(m domain.MessageCreated) string {
	if m.ChannelName != "" {
		return m.ChannelName
	}
	return "Unknown"
}
