package keepalive

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestPingSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("Bot is alive!"))
	}))
	defer srv.Close()

	p := NewPinger(srv.URL, time.Minute, zerolog.Nop())
	if err := p.Ping(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("ожидали 1 запрос, получили %d", hits.Load())
	}
}

func TestPingErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewPinger(srv.URL, time.Minute, zerolog.Nop())
	if err := p.Ping(context.Background()); err == nil {
		t.Fatal("ожидали ошибку для 503")
	}
}

func TestStartDisabledWithoutURL(t *testing.T) {
	p := NewPinger("", time.Minute, zerolog.Nop())
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if p.cron != nil {
		t.Fatal("без URL расписание не создаётся")
	}
	p.Stop()
}

func TestStartSchedules(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	p := NewPinger(srv.URL, time.Second, zerolog.Nop())
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	defer p.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for hits.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("self-ping не выполнился по расписанию")
		}
		time.Sleep(50 * time.Millisecond)
	}
}
