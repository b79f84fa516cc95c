package handlers

import (
	"encoding/json"

	"armory-server/internal/domain"
	"armory-server/internal/inventory"
	"armory-server/internal/presentation"
	"armory-server/internal/world"
	"armory-server/pkg/loadout"
)

// Context передает хендлеру состояние игрока и мира.
// Ссылки, а не копии: хендлер меняет состояние напрямую.
type Context struct {
	Player    domain.PlayerID
	Inventory *inventory.Manager
	Input     *inventory.Latch // ввод копится до ближайшего тика
	Body      *world.Body
	Rig       *presentation.Rig
	Drops     *world.Store
	Catalog   *loadout.Catalog
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи игрока напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, ERROR, ADMIN)
}

// HandlerFunc - это контракт для любой команды (INPUT, PICKUP, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// Info / Fail - короткие конструкторы результата.
func Info(msg string) Result { return Result{Msg: msg, MsgType: domain.MsgInfo} }

func Fail(err error) Result { return Result{Msg: err.Error(), MsgType: domain.MsgError} }
