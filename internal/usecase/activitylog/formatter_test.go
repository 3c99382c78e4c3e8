package activitylog

import (
	"strings"
	"testing"
	"time"

	"event-ping-bot/internal/domain"
)

func TestFormatMemberJoined(t *testing.T) {
	p := Format(domain.ActivityMemberJoined, domain.ActivityDetail{UserTag: "Alice#0001"})
	mustContain(t, p.Title, "Joined")
	mustContain(t, p.Body, "Alice#0001")
}

func TestFormatPlaceholders(t *testing.T) {
	p := Format(domain.ActivityMessageDeleted, domain.ActivityDetail{ChannelID: "42"})
	mustContain(t, p.Body, "**User:** Unknown")
	mustContain(t, p.Body, "<#42>")
	mustContain(t, p.Body, "*No text*")

	left := Format(domain.ActivityMemberLeft, domain.ActivityDetail{})
	mustContain(t, left.Body, "Unknown")
}

func TestFormatEdited(t *testing.T) {
	p := Format(domain.ActivityMessageEdited, domain.ActivityDetail{AuthorTag: "bob", ChannelID: "1", Before: "old", After: "new"})
	mustContain(t, p.Body, "**Before:** old")
	mustContain(t, p.Body, "**After:** new")
	if p.Mention != "" {
		t.Fatalf("записи журнала не должны никого упоминать: %q", p.Mention)
	}
}

func TestFormatKindsHaveDistinctTitles(t *testing.T) {
	kinds := []domain.ActivityKind{
		domain.ActivityMessageSent,
		domain.ActivityMessageEdited,
		domain.ActivityMessageDeleted,
		domain.ActivityMemberJoined,
		domain.ActivityMemberLeft,
	}
	seen := make(map[string]domain.ActivityKind)
	for _, k := range kinds {
		title := Format(k, domain.ActivityDetail{}).Title
		if prev, ok := seen[title]; ok {
			t.Fatalf("%s и %s имеют одинаковый заголовок %q", prev, k, title)
		}
		seen[title] = k
	}
}

func TestFormatConnection(t *testing.T) {
	at := time.Unix(1700000000, 0)
	p := Format(domain.ActivityConnection, domain.ActivityDetail{State: domain.ConnectionConnected, At: at})
	mustContain(t, p.Body, "started successfully")
	mustContain(t, p.Body, "<t:1700000000:T>")

	p = Format(domain.ActivityConnection, domain.ActivityDetail{State: domain.ConnectionResumed, At: at})
	mustContain(t, p.Body, "restored")
	if strings.Contains(p.Body, "started") {
		t.Fatalf("возобновление сессии не должно выглядеть как запуск: %q", p.Body)
	}

	p = Format(domain.ActivityConnection, domain.ActivityDetail{State: domain.ConnectionReconnecting})
	mustContain(t, p.Body, "reconnecting")

	p = Format(domain.ActivityConnection, domain.ActivityDetail{State: domain.ConnectionDisconnected})
	mustContain(t, p.Body, "disconnected")
}

func TestFormatPing(t *testing.T) {
	rule := domain.TriggerRule{RoleID: "1382545829134336080", Reply: "Spidey just pinged your event!"}
	p := FormatPing(rule)
	if p.Mention != "<@&1382545829134336080>" {
		t.Fatalf("неожиданное упоминание: %q", p.Mention)
	}
	mustContain(t, p.Body, "Hey <@&1382545829134336080>! Spidey just pinged your event!")

	fallback := FormatPing(domain.TriggerRule{RoleID: "1"})
	mustContain(t, fallback.Body, "pinged")
}

func mustContain(t *testing.T, s, substr string) {
	t.Helper()
	if !strings.Contains(s, substr) {
		t.Fatalf("ожидали найти подстроку %q в %q", substr, s)
	}
}
