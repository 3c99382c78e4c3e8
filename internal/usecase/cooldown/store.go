package cooldown

import "time"

// Store хранит для каждого триггера момент, до которого он не может сработать.
//
// Store не синхронизирован: им владеет диспетчер, который обрабатывает
// события строго по одному.
type Store struct {
	next map[string]time.Time
}

// NewStore создаёт пустое хранилище. Неизвестные ключи считаются готовыми.
func NewStore() *Store {
	return &Store{next: make(map[string]time.Time)}
}

// IsReady сообщает, может ли триггер сработать в момент now.
func (s *Store) IsReady(key string, now time.Time) bool {
	return now.After(s.next[key])
}

// Arm запрещает срабатывание триггера до now+d.
func (s *Store) Arm(key string, now time.Time, d time.Duration) {
	s.next[key] = now.Add(d)
}

// NextAllowedAt возвращает границу кулдауна. Нулевое время — триггер ещё не срабатывал.
func (s *Store) NextAllowedAt(key string) time.Time {
	return s.next[key]
}
