package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	EventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_events_total",
		Help: "Количество входящих событий шлюза",
	}, []string{"kind"})

	TriggersFired = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_triggers_fired_total",
		Help: "Сработавшие триггеры",
	}, []string{"trigger"})

	TriggersSuppressed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_triggers_suppressed_total",
		Help: "Совпадения, подавленные кулдауном",
	}, []string{"trigger"})

	NoticesSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_notices_sent_total",
		Help: "Доставленные уведомления",
	}, []string{"purpose"})

	NoticesDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_notices_dropped_total",
		Help: "Уведомления, отброшенные из-за очереди на отправку",
	}, []string{"purpose"})

	BotSendErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bot_send_errors_total",
		Help: "Ошибки отправки сообщений ботом",
	})

	EventQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bot_event_queue_depth",
		Help: "Событий в очереди на обработку",
	})

	SelfPingTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_self_ping_total",
		Help: "Результаты self-ping",
	}, []string{"status"})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Длительность сетевых запросов",
		Buckets: prometheus.DefBuckets,
	}, []string{"component", "operation", "target", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Количество сетевых запросов",
	}, []string{"component", "operation", "target", "status"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		EventsTotal,
		TriggersFired,
		TriggersSuppressed,
		NoticesSent,
		NoticesDropped,
		BotSendErrors,
		EventQueueDepth,
		SelfPingTotal,
		NetworkRequestDuration,
		NetworkRequestTotal,
	)
}

// ObserveNetworkRequest записывает длительность и статус сетевого запроса.
func ObserveNetworkRequest(component, operation, target string, start time.Time, err error) {
	if component == "" {
		component = "unknown"
	}
	if operation == "" {
		operation = "unknown"
	}
	if target == "" {
		target = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, target, status).Observe(duration)
	NetworkRequestTotal.WithLabelValues(component, operation, target, status).Inc()
}

// IncEvent увеличивает счётчик входящих событий.
func IncEvent(kind string) {
	EventsTotal.WithLabelValues(kind).Inc()
}

// IncTriggerFired увеличивает счётчик сработавших триггеров.
func IncTriggerFired(name string) {
	TriggersFired.WithLabelValues(name).Inc()
}

// IncTriggerSuppressed увеличивает счётчик подавленных кулдауном совпадений.
func IncTriggerSuppressed(name string) {
	TriggersSuppressed.WithLabelValues(name).Inc()
}

// IncNoticeSent увеличивает счётчик доставленных уведомлений.
func IncNoticeSent(purpose string) {
	NoticesSent.WithLabelValues(purpose).Inc()
}

// IncNoticeDropped увеличивает счётчик отброшенных уведомлений.
func IncNoticeDropped(purpose string) {
	NoticesDropped.WithLabelValues(purpose).Inc()
}

// IncSelfPing учитывает результат self-ping.
func IncSelfPing(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	SelfPingTotal.WithLabelValues(status).Inc()
}
