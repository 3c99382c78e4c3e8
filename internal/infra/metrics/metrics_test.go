package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	MustRegister(reg)
	IncEvent("member_joined")
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("не удалось собрать метрики: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("ожидали зарегистрированные метрики")
	}
}

func TestTriggerCounters(t *testing.T) {
	before := testutil.ToFloat64(TriggersFired.WithLabelValues("metrics-test"))
	IncTriggerFired("metrics-test")
	if got := testutil.ToFloat64(TriggersFired.WithLabelValues("metrics-test")); got != before+1 {
		t.Fatalf("ожидали %v, получили %v", before+1, got)
	}
}

func TestObserveNetworkRequestDefaults(t *testing.T) {
	ObserveNetworkRequest("", "", "", time.Now(), errors.New("boom"))
	if got := testutil.ToFloat64(NetworkRequestTotal.WithLabelValues("unknown", "unknown", "unknown", "error")); got < 1 {
		t.Fatalf("ожидали запись с метками unknown, получили %v", got)
	}
}

func TestIncSelfPing(t *testing.T) {
	before := testutil.ToFloat64(SelfPingTotal.WithLabelValues("success"))
	IncSelfPing(nil)
	if got := testutil.ToFloat64(SelfPingTotal.WithLabelValues("success")); got != before+1 {
		t.Fatalf("ожидали %v, получили %v", before+1, got)
	}
}
