package triggers

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"event-ping-bot/internal/domain"
)

type fileRule struct {
	Name      string   `yaml:"name"`
	ChannelID string   `yaml:"channel_id"`
	RoleID    string   `yaml:"role_id"`
	Phrases   []string `yaml:"phrases"`
	Cooldown  string   `yaml:"cooldown"`
	Reply     string   `yaml:"reply"`
}

type fileConfig struct {
	Triggers []fileRule `yaml:"triggers"`
}

// LoadFile читает триггеры из YAML-файла.
// Правила без явного cooldown получают fallback.
func LoadFile(path string, fallback time.Duration) ([]domain.TriggerRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read triggers file: %w", err)
	}
	return Parse(data, fallback)
}

// Parse разбирает YAML с описанием триггеров.
func Parse(data []byte, fallback time.Duration) ([]domain.TriggerRule, error) {
	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode triggers: %w", err)
	}
	if len(cfg.Triggers) == 0 {
		return nil, fmt.Errorf("%w: файл не содержит триггеров", ErrRuleInvalid)
	}
	rules := make([]domain.TriggerRule, 0, len(cfg.Triggers))
	for _, fr := range cfg.Triggers {
		cooldown := fallback
		if fr.Cooldown != "" {
			d, err := time.ParseDuration(fr.Cooldown)
			if err != nil {
				return nil, fmt.Errorf("trigger %q: parse cooldown: %w", fr.Name, err)
			}
			cooldown = d
		}
		rules = append(rules, domain.TriggerRule{
			Name:      fr.Name,
			ChannelID: fr.ChannelID,
			RoleID:    fr.RoleID,
			Phrases:   fr.Phrases,
			Cooldown:  cooldown,
			Reply:     fr.Reply,
		})
	}
	return rules, nil
}

// WithCooldown возвращает копии правил с заданным кулдауном.
func WithCooldown(rules []domain.TriggerRule, d time.Duration) []domain.TriggerRule {
	out := make([]domain.TriggerRule, len(rules))
	for i, rule := range rules {
		rule.Cooldown = d
		out[i] = rule
	}
	return out
}
