package domain

import "time"

// Группы оружия по умолчанию
const (
	GroupPrimary   = "Primary"
	GroupSecondary = "Secondary"
	GroupMelee     = "Melee"
)

// Тег, по которому сцена отдает дочерние объекты-оружие
const WeaponTag = "weapon"

// Длительности анимаций по умолчанию (если в каталоге не указаны)
const (
	DefaultPutAwayDuration = 400 * time.Millisecond
	DefaultTakeOutDuration = 600 * time.Millisecond
)

// Параметры симуляции
const (
	DefaultTickRate  = 30 // тиков в секунду
	DefaultDropForce = 4.0
	DefaultDropDist  = 1.0
	PickupRadius     = 2.5 // метры
)

// Типы сообщений в логе игрока
const (
	MsgInfo  = "INFO"
	MsgError = "ERROR"
	MsgAdmin = "ADMIN"
)
