package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionInput   // Нажатия клавиш / колесо / кнопка выброса (защелкиваются до тика)
	ActionPose    // Обновление позиции игрока
	ActionPickup  // Подобрать оружие из мира
	ActionReplace // Заменить активное оружие подобранным
	// Админские
	ActionGive
	ActionAddGroup
	ActionRemoveGroup
	ActionAddSlot
	ActionRemoveSlot
	// Служебные: пишутся в реплей, от клиента не принимаются
	ActionJoin
	ActionLeave
	// Стрельба. В конце списка, чтобы не сдвигать коды в старых реплеях
	ActionFire
	ActionReload
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":         ActionInit,
	"INPUT":        ActionInput,
	"POSE":         ActionPose,
	"PICKUP":       ActionPickup,
	"REPLACE":      ActionReplace,
	"GIVE":         ActionGive,
	"ADD_GROUP":    ActionAddGroup,
	"REMOVE_GROUP": ActionRemoveGroup,
	"ADD_SLOT":     ActionAddSlot,
	"REMOVE_SLOT":  ActionRemoveSlot,
	"JOIN":         ActionJoin,
	"LEAVE":        ActionLeave,
	"FIRE":         ActionFire,
	"RELOAD":       ActionReload,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:        "INIT",
	ActionInput:       "INPUT",
	ActionPose:        "POSE",
	ActionPickup:      "PICKUP",
	ActionReplace:     "REPLACE",
	ActionGive:        "GIVE",
	ActionAddGroup:    "ADD_GROUP",
	ActionRemoveGroup: "REMOVE_GROUP",
	ActionAddSlot:     "ADD_SLOT",
	ActionRemoveSlot:  "REMOVE_SLOT",
	ActionJoin:        "JOIN",
	ActionLeave:       "LEAVE",
	ActionFire:        "FIRE",
	ActionReload:      "RELOAD",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}

// IsAdmin - команды, меняющие структуру инвентаря в обход игровых правил
func (a ActionType) IsAdmin() bool {
	return a >= ActionGive && a <= ActionRemoveSlot
}

// IsInternal - действия, которые движок порождает сам (вход/выход игрока).
func (a ActionType) IsInternal() bool {
	return a == ActionJoin || a == ActionLeave
}

// MarshalText - в JSON (реплей, отладка) действие пишется строкой.
func (a ActionType) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *ActionType) UnmarshalText(b []byte) error {
	*a = ParseAction(string(b))
	return nil
}
