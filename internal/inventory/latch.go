package inventory

import "armory-server/internal/domain"

// Latch - InputSource, который накапливает ввод между тиками.
// Сетевые команды пишут в защелку, Manager.Poll читает и сбрасывает ее раз в тик.
type Latch struct {
	key     domain.SlotKey
	pressed bool
	wheel   float64
	drop    bool
	hide    bool
}

// Press запоминает последнюю нажатую клавишу слота.
func (l *Latch) Press(key domain.SlotKey) {
	l.key = key
	l.pressed = true
}

// Scroll суммирует прокрутку за тик.
func (l *Latch) Scroll(delta float64) { l.wheel += delta }

func (l *Latch) Drop() { l.drop = true }

func (l *Latch) Hide() { l.hide = true }

// Pending - есть ли несчитанный ввод.
func (l *Latch) Pending() bool {
	return l.pressed || l.wheel != 0 || l.drop || l.hide
}

func (l *Latch) PollKey() (domain.SlotKey, bool) {
	k, p := l.key, l.pressed
	l.key, l.pressed = "", false
	return k, p
}

func (l *Latch) PollWheel() float64 {
	w := l.wheel
	l.wheel = 0
	return w
}

func (l *Latch) PollDrop() bool {
	d := l.drop
	l.drop = false
	return d
}

func (l *Latch) PollHide() bool {
	h := l.hide
	l.hide = false
	return h
}
