package domain

import "encoding/json"

// ReplayAction - запись одной команды игрока
type ReplayAction struct {
	Tick    int             `json:"tick"`
	Token   PlayerID        `json:"token"`   // Кто сделал
	Action  ActionType      `json:"action"`  // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - лента команд всех игроков сервера.
// Seed задает пространство имен для id выброшенного оружия,
// поэтому при проигрывании PICKUP находит те же самые объекты.
type ReplaySession struct {
	Seed      int64          `json:"seed"`
	TickRate  int            `json:"tickRate"`
	Timestamp int64          `json:"timestamp"`
	Actions   []ReplayAction `json:"actions"`
}

// LastTick - тик последней записанной команды (0 для пустой ленты).
func (s *ReplaySession) LastTick() int {
	if s == nil || len(s.Actions) == 0 {
		return 0
	}
	return s.Actions[len(s.Actions)-1].Tick
}
