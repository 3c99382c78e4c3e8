package keepalive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"event-ping-bot/internal/infra/metrics"
)

// Pinger периодически запрашивает собственный публичный URL, чтобы хостинг не усыплял процесс.
type Pinger struct {
	url      string
	interval time.Duration
	client   *http.Client
	log      zerolog.Logger
	cron     *cron.Cron
}

// NewPinger создаёт пингер. Пустой url отключает self-ping.
func NewPinger(url string, interval time.Duration, log zerolog.Logger) *Pinger {
	return &Pinger{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

// Start регистрирует задачу по расписанию @every. Повторный вызов ничего не делает.
func (p *Pinger) Start(ctx context.Context) error {
	if p.url == "" {
		p.log.Info().Msg("self-ping отключён: SELF_PING_URL не задан")
		return nil
	}
	if p.cron != nil {
		return nil
	}
	c := cron.New()
	schedule := fmt.Sprintf("@every %s", p.interval)
	if _, err := c.AddFunc(schedule, func() { _ = p.Ping(ctx) }); err != nil {
		return fmt.Errorf("schedule self-ping: %w", err)
	}
	c.Start()
	p.cron = c
	p.log.Info().Str("url", p.url).Dur("interval", p.interval).Msg("self-ping запущен")
	return nil
}

// Stop останавливает расписание и ждёт завершения текущего запроса.
func (p *Pinger) Stop() {
	if p.cron == nil {
		return
	}
	<-p.cron.Stop().Done()
	p.cron = nil
}

// Ping выполняет один запрос к URL.
func (p *Pinger) Ping(ctx context.Context) error {
	start := time.Now()
	err := p.do(ctx)
	metrics.ObserveNetworkRequest("keepalive", "self_ping", p.url, start, err)
	metrics.IncSelfPing(err)
	if err != nil {
		p.log.Error().Err(err).Msg("❌ Self-ping failed")
		return err
	}
	p.log.Debug().Msg("🔁 Self-ping successful")
	return nil
}

func (p *Pinger) do(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("self-ping: unexpected status %d", resp.StatusCode)
	}
	return nil
}
