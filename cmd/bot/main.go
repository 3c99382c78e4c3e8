package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"event-ping-bot/internal/adapters/discord"
	"event-ping-bot/internal/adapters/keepalive"
	"event-ping-bot/internal/domain"
	"event-ping-bot/internal/infra/config"
	apphttp "event-ping-bot/internal/infra/http"
	"event-ping-bot/internal/infra/log"
	"event-ping-bot/internal/infra/metrics"
	"event-ping-bot/internal/usecase/classify"
	"event-ping-bot/internal/usecase/cooldown"
	"event-ping-bot/internal/usecase/dispatch"
	"event-ping-bot/internal/usecase/relay"
	"event-ping-bot/internal/usecase/triggers"
)

func main() {
	cfg := config.Load()
	logger := log.NewLogger(cfg.AppEnv)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	rules := triggers.WithCooldown(triggers.DefaultRules(), cfg.Triggers.Cooldown)
	if cfg.Triggers.File != "" {
		loaded, err := triggers.LoadFile(cfg.Triggers.File, cfg.Triggers.Cooldown)
		if err != nil {
			logger.Fatal().Err(err).Str("file", cfg.Triggers.File).Msg("не удалось загрузить триггеры")
		}
		rules = loaded
	}
	registry, err := triggers.NewRegistry(rules...)
	if err != nil {
		logger.Fatal().Err(err).Msg("некорректные триггеры")
	}
	for _, rule := range registry.Rules() {
		logger.Info().
			Str("trigger", rule.Name).
			Str("channel", rule.ChannelID).
			Str("role", rule.RoleID).
			Dur("cooldown", rule.Cooldown).
			Msg("триггер зарегистрирован")
	}
	if cfg.Discord.LogChannelID == "" {
		logger.Warn().Msg("LOG_CHANNEL_ID не задан, журнал активности отключён")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	session, err := discord.NewSession(cfg.Discord.Token, cfg.Discord.MessageCacheSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать сессию Discord")
	}
	sender := discord.NewSender(session, session.State, cfg.Discord.SendRPS, cfg.Discord.SendMaxDelay)

	classifier := classify.New(registry, cfg.Discord.LogChannelID)
	dispatcher := dispatch.New(cooldown.NewStore(), cfg.Discord.LogChannelID)
	relaySvc := relay.NewService(logger, classifier, dispatcher, sender, cfg.Relay.QueueSize)

	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		if err := relaySvc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("обработка событий остановлена")
		}
	}()

	srv := apphttp.NewServer(logger)
	go func() {
		if err := srv.Start(cfg.Addr()); err != nil {
			logger.Error().Err(err).Msg("HTTP сервер остановлен")
		}
	}()

	pinger := keepalive.NewPinger(cfg.SelfPing.URL, cfg.SelfPing.Interval, logger)
	if err := pinger.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("self-ping не запущен")
	}

	gateway := discord.NewGateway(session, relaySvc, logger)
	if err := gateway.Open(ctx); err != nil {
		logger.Fatal().Err(err).Msg("не удалось подключиться к Discord")
	}
	logger.Info().Int("triggers", registry.Len()).Msg("бот запущен")

	<-ctx.Done()
	logger.Info().Msg("остановка бота")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pinger.Stop()
	<-relayDone
	// последнее уведомление о статусе до закрытия соединения
	relaySvc.Handle(shutdownCtx, domain.ConnectionStateChanged{
		EventID: uuid.NewString(),
		State:   domain.ConnectionDisconnected,
		At:      time.Now(),
	})
	if err := relaySvc.Wait(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("не все уведомления отправлены")
	}
	if err := gateway.Close(); err != nil {
		logger.Error().Err(err).Msg("ошибка закрытия сессии Discord")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("ошибка остановки HTTP сервера")
	}
}

var _ domain.Sender = (*discord.Sender)(nil)
var _ domain.CooldownStore = (*cooldown.Store)(nil)
var _ domain.TriggerLookup = (*triggers.Registry)(nil)
var _ discord.EventSink = (*relay.Service)(nil)
