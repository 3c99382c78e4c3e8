package domain

import "testing"

func TestTriggerRuleTokens(t *testing.T) {
	rule := TriggerRule{ChannelID: "1382543528957186109", RoleID: "1382545829134336080"}
	if got := rule.MentionToken(); got != "<@&1382545829134336080>" {
		t.Fatalf("MentionToken() = %q, ожидали упоминание роли", got)
	}
	if got := rule.Key(); got != rule.ChannelID {
		t.Fatalf("Key() = %q, ожидали ID канала", got)
	}
	if got := ChannelMention("42"); got != "<#42>" {
		t.Fatalf("ChannelMention() = %q, ожидали упоминание канала", got)
	}
}

func TestInboundEventKinds(t *testing.T) {
	tests := []struct {
		ev   InboundEvent
		want string
	}{
		{ev: MessageCreated{EventID: "a"}, want: "message_created"},
		{ev: MessageEdited{EventID: "b"}, want: "message_edited"},
		{ev: MessageDeleted{EventID: "c"}, want: "message_deleted"},
		{ev: MemberJoined{EventID: "d"}, want: "member_joined"},
		{ev: MemberLeft{EventID: "e"}, want: "member_left"},
		{ev: ConnectionStateChanged{EventID: "f"}, want: "connection_state"},
	}
	seen := make(map[string]bool)
	for _, tt := range tests {
		if got := tt.ev.Kind(); got != tt.want {
			t.Fatalf("Kind() = %q, ожидали %q", got, tt.want)
		}
		if seen[tt.ev.ID()] {
			t.Fatalf("повторяющийся ID %q", tt.ev.ID())
		}
		seen[tt.ev.ID()] = true
	}
}
