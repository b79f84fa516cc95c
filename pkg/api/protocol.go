package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера.
const (
	TypeWelcome = "WELCOME"
	TypeHUD     = "HUD"
	TypeError   = "ERROR"
)

// ServerResponse - корневой объект всех сообщений сервера.
// HUD отправляется, когда у игрока изменился инвентарь или появились новые записи лога.
type ServerResponse struct {
	// Type - WELCOME (ответ на рукопожатие), HUD или ERROR.
	Type string `json:"type"`

	// Tick - номер тика симуляции, на котором собран снимок.
	Tick int `json:"tick"`

	// PlayerID - id игрока, которому адресовано сообщение.
	PlayerID string `json:"playerId,omitempty"`

	// Protocol - версия протокола сервера (только в WELCOME и ERROR рукопожатия).
	Protocol string `json:"protocol,omitempty"`

	// Inventory - состояние инвентаря.
	Inventory *InventoryView `json:"inventory,omitempty"`

	// Drops - оружие, лежащее рядом с игроком.
	Drops []DropView `json:"drops,omitempty"`

	// Logs - новые сообщения с прошлого HUD.
	Logs []LogEntry `json:"logs,omitempty"`

	// Error - текст ошибки для Type == ERROR.
	Error string `json:"error,omitempty"`
}

// InventoryView - HUD инвентаря.
type InventoryView struct {
	// State - состояние контроллера переходов (IDLE, SWITCHING_OUT, ...).
	// Пока оно не IDLE, клиенту не стоит отправлять новые команды выбора.
	State     string      `json:"state"`
	ActiveKey string      `json:"activeKey,omitempty"`
	Active    *WeaponView `json:"active,omitempty"`
	// Hidden - активное оружие убрано (HIDE), но остается выбранным.
	Hidden bool        `json:"hidden,omitempty"`
	Ammo   *AmmoView   `json:"ammo,omitempty"`
	Groups []GroupView `json:"groups"`
}

type WeaponView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

type AmmoView struct {
	Loaded  int `json:"loaded"`
	Reserve int `json:"reserve"`
}

// GroupView - группа слотов в порядке прокрутки.
type GroupView struct {
	Name  string     `json:"name"`
	Full  bool       `json:"full"`
	Slots []SlotView `json:"slots"`
}

type SlotView struct {
	Key    string      `json:"key"`
	Weapon *WeaponView `json:"weapon,omitempty"`
	Active bool        `json:"active,omitempty"`
}

// DropView - оружие в мире, которое можно подобрать (PICKUP / REPLACE по id).
type DropView struct {
	ID       string     `json:"id"`
	Weapon   WeaponView `json:"weapon"`
	Position Vec3       `json:"position"`
	Distance float64    `json:"distance"`
}

type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// LogEntry представляет одну запись в логе игрока.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, ERROR, ADMIN
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand - корневой объект всех сообщений клиента.
type ClientCommand struct {
	// Token - id игрока. Читается только из первого сообщения (рукопожатия);
	// пустой токен - сервер выдаст новый id. Длина ограничена: токен пишется в реплей.
	Token string `json:"token,omitempty" validate:"omitempty,max=64,printascii"`

	// Version - версия протокола клиента, обязательна в рукопожатии.
	Version string `json:"version,omitempty"`

	// Action - INIT, INPUT, POSE, PICKUP, REPLACE, FIRE, RELOAD или админская команда.
	Action string `json:"action"`

	// Payload - данные действия, структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// InputPayload - ввод за кадр клиента. Сервер копит его до ближайшего тика.
type InputPayload struct {
	Key   string  `json:"key,omitempty" validate:"max=32"` // клавиша слота
	Wheel float64 `json:"wheel,omitempty"`                 // прокрутка, знак - направление
	Drop  bool    `json:"drop,omitempty"`
	Hide  bool    `json:"hide,omitempty"` // убрать / достать активное оружие
}

// PosePayload - положение игрока (нужно для выброса оружия и подбора).
type PosePayload struct {
	Position Vec3 `json:"position"`
	Forward  Vec3 `json:"forward"`
	Rotation Vec3 `json:"rotation"`
}

// PickupPayload - PICKUP и REPLACE.
type PickupPayload struct {
	DropID string `json:"dropId" validate:"required,uuid"`
}

// GivePayload - админская выдача оружия из каталога.
type GivePayload struct {
	WeaponID string `json:"weaponId" validate:"required"`
}

// GroupPayload - ADD_GROUP / REMOVE_GROUP.
type GroupPayload struct {
	Name string   `json:"name" validate:"required,max=64"`
	Keys []string `json:"keys,omitempty" validate:"dive,required,max=32"`
}

// SlotPayload - ADD_SLOT / REMOVE_SLOT.
type SlotPayload struct {
	Group string `json:"group" validate:"required,max=64"`
	Key   string `json:"key" validate:"required,max=32"`
}
