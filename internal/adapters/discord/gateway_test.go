package discord

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"event-ping-bot/internal/domain"
)

type sliceSink struct {
	mu     sync.Mutex
	events []domain.InboundEvent
}

func (s *sliceSink) Enqueue(_ context.Context, ev domain.InboundEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func newTestGateway() (*Gateway, *sliceSink) {
	sink := &sliceSink{}
	g := NewGateway(nil, sink, zerolog.Nop())
	seq := 0
	g.newID = func() string {
		seq++
		return strconv.Itoa(seq)
	}
	g.now = func() time.Time { return time.Unix(1700000000, 0) }
	return g, sink
}

func TestOnMessageCreate(t *testing.T) {
	g, sink := newTestGateway()
	g.onMessageCreate(nil, &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: "10",
		GuildID:   "1",
		Content:   "@dungeon",
		Author:    &discordgo.User{ID: "7", Username: "bob", Discriminator: "0002"},
	}})

	ev, ok := sink.events[0].(domain.MessageCreated)
	if !ok {
		t.Fatalf("неожиданный тип события %T", sink.events[0])
	}
	if ev.EventID != "1" || ev.AuthorTag != "bob#0002" || !ev.GuildPresent || ev.AuthorIsBot || ev.IsWebhook {
		t.Fatalf("неожиданное событие: %+v", ev)
	}
}

func TestOnMessageCreateWebhookAndDM(t *testing.T) {
	g, sink := newTestGateway()
	g.onMessageCreate(nil, &discordgo.MessageCreate{Message: &discordgo.Message{ChannelID: "10", GuildID: "1", WebhookID: "w"}})
	g.onMessageCreate(nil, &discordgo.MessageCreate{Message: &discordgo.Message{ChannelID: "10", Author: &discordgo.User{Bot: true}}})

	hook := sink.events[0].(domain.MessageCreated)
	if !hook.IsWebhook || hook.AuthorTag != "" {
		t.Fatalf("неожиданное событие вебхука: %+v", hook)
	}
	dm := sink.events[1].(domain.MessageCreated)
	if dm.GuildPresent || !dm.AuthorIsBot {
		t.Fatalf("неожиданное событие из лички: %+v", dm)
	}
}

func TestOnMessageUpdateUsesCache(t *testing.T) {
	g, sink := newTestGateway()
	author := &discordgo.User{Username: "bob"}
	g.onMessageUpdate(nil, &discordgo.MessageUpdate{
		Message:      &discordgo.Message{ChannelID: "10", GuildID: "1", Content: "new", Author: author},
		BeforeUpdate: &discordgo.Message{Content: "old", Author: author},
	})
	ev := sink.events[0].(domain.MessageEdited)
	if ev.Before != "old" || ev.After != "new" || ev.AuthorTag != "bob" {
		t.Fatalf("неожиданная правка: %+v", ev)
	}
}

func TestOnMessageUpdatePartialIsUnchanged(t *testing.T) {
	g, sink := newTestGateway()
	g.onMessageUpdate(nil, &discordgo.MessageUpdate{
		Message:      &discordgo.Message{ChannelID: "10", GuildID: "1"},
		BeforeUpdate: &discordgo.Message{Content: "link https://example.com", Author: &discordgo.User{Username: "bob"}},
	})
	ev := sink.events[0].(domain.MessageEdited)
	if ev.Before != ev.After {
		t.Fatalf("частичное обновление не должно выглядеть как правка: %+v", ev)
	}
	if ev.AuthorTag != "bob" {
		t.Fatalf("ожидали автора из кэша, получили %q", ev.AuthorTag)
	}
}

func TestOnMessageDeleteWithoutCache(t *testing.T) {
	g, sink := newTestGateway()
	g.onMessageDelete(nil, &discordgo.MessageDelete{Message: &discordgo.Message{ChannelID: "10", GuildID: "1"}})
	ev := sink.events[0].(domain.MessageDeleted)
	if ev.AuthorTag != "" || ev.Content != "" || !ev.GuildPresent {
		t.Fatalf("неожиданное удаление: %+v", ev)
	}
}

func TestOnMemberEvents(t *testing.T) {
	g, sink := newTestGateway()
	member := &discordgo.Member{GuildID: "1", User: &discordgo.User{Username: "Alice", Discriminator: "0001"}}
	g.onMemberAdd(nil, &discordgo.GuildMemberAdd{Member: member})
	g.onMemberRemove(nil, &discordgo.GuildMemberRemove{Member: member})

	join := sink.events[0].(domain.MemberJoined)
	if join.UserTag != "Alice#0001" || join.GuildID != "1" {
		t.Fatalf("неожиданный вход: %+v", join)
	}
	if _, ok := sink.events[1].(domain.MemberLeft); !ok {
		t.Fatalf("неожиданный тип события %T", sink.events[1])
	}
}

func TestConnectionLifecycle(t *testing.T) {
	g, sink := newTestGateway()
	g.onConnect(nil, &discordgo.Connect{})
	g.onReady(nil, &discordgo.Ready{})
	g.onDisconnect(nil, &discordgo.Disconnect{})
	g.onDisconnect(nil, &discordgo.Disconnect{})
	g.onConnect(nil, &discordgo.Connect{})
	g.onResumed(nil, &discordgo.Resumed{})
	g.onDisconnect(nil, &discordgo.Disconnect{})
	g.onReady(nil, &discordgo.Ready{})

	want := []domain.ConnectionState{
		domain.ConnectionConnected,
		domain.ConnectionDisconnected,
		domain.ConnectionReconnecting,
		domain.ConnectionResumed,
		domain.ConnectionDisconnected,
		domain.ConnectionResumed,
	}
	if len(sink.events) != len(want) {
		t.Fatalf("ожидали %d событий, получили %d", len(want), len(sink.events))
	}
	for i, state := range want {
		ev := sink.events[i].(domain.ConnectionStateChanged)
		if ev.State != state {
			t.Fatalf("событие %d: ожидали %s, получили %s", i, state, ev.State)
		}
	}
}

type stoppedSink struct{}

func (stoppedSink) Enqueue(context.Context, domain.InboundEvent) error {
	return fmt.Errorf("enqueue: %w", domain.ErrStopped)
}

func TestPublishAfterStopIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	g := NewGateway(nil, stoppedSink{}, zerolog.New(&buf))

	g.onDisconnect(nil, &discordgo.Disconnect{})
	g.onMemberAdd(nil, &discordgo.GuildMemberAdd{Member: &discordgo.Member{User: &discordgo.User{Username: "Alice"}}})

	if bytes.Contains(buf.Bytes(), []byte("не поставлено в очередь")) {
		t.Fatalf("после остановки обработки не ожидали предупреждений: %s", buf.String())
	}
}
