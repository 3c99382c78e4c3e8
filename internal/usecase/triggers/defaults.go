package triggers

import "event-ping-bot/internal/domain"

// DefaultRules — встроенные триггеры сервера.
func DefaultRules() []domain.TriggerRule {
	return []domain.TriggerRule{
		{
			Name:      "worldBosses",
			ChannelID: "1382543528957186109",
			RoleID:    "1382545829134336080",
			Phrases:   []string{"@world boss ping"},
			Cooldown:  domain.DefaultCooldown,
			Reply:     "Spidey just pinged your event!",
		},
		{
			Name:      "dungeon",
			ChannelID: "1382543480848519218",
			RoleID:    "1382546016716460124",
			Phrases:   []string{"@dungeon"},
			Cooldown:  domain.DefaultCooldown,
			Reply:     "A dungeon event might have appeared!",
		},
		{
			Name:      "infernal",
			ChannelID: "1382541305720344607",
			RoleID:    "1382546145728921620",
			Phrases:   []string{"@infernal"},
			Cooldown:  domain.DefaultCooldown,
			Reply:     "An Infernal Castle might be spawning!",
		},
	}
}
