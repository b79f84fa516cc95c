package domain

import "encoding/json"

// InternalCommand - команда для движка.
// Использует ActionType вместо string.
type InternalCommand struct {
	Action  ActionType
	Token   PlayerID        // Игрок, от имени которого выполняется команда
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}
