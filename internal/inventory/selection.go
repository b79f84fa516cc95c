package inventory

import "armory-server/internal/domain"

// SelectByKey - реакция на нажатие клавиши слота.
// Повторное нажатие на клавишу скрытого активного оружия достает его обратно.
func (m *Manager) SelectByKey(key domain.SlotKey) bool {
	if m.Busy() {
		return false
	}
	w, _, ok := m.reg.Lookup(key)
	if !ok {
		return false
	}
	if key == m.activeKey {
		if m.hidden {
			return m.ShowActive()
		}
		return false
	}
	if w == nil {
		return false
	}
	return m.ActivateKey(key)
}

// SelectByWheel выбирает следующий занятый слот в направлении прокрутки.
// Все слоты всех групп образуют одно кольцо в порядке групп, поэтому
// прокрутка в одну сторону обходит каждое оружие ровно один раз за круг.
func (m *Manager) SelectByWheel(delta float64) bool {
	if m.Busy() || delta == 0 {
		return false
	}
	key, ok := m.nextByWheel(delta)
	if !ok {
		return false
	}
	return m.ActivateKey(key)
}

func (m *Manager) nextByWheel(delta float64) (domain.SlotKey, bool) {
	ring := m.reg.order()
	n := len(ring)
	if n == 0 {
		return "", false
	}

	start := -1
	if m.activeKey != "" {
		for i, s := range ring {
			if s.Key == m.activeKey {
				start = i
				break
			}
		}
	}

	// Руки пусты - первый занятый слот первой группы (или первый занятый вообще)
	if start < 0 {
		for _, s := range ring {
			if s.Occupant != nil {
				return s.Key, true
			}
		}
		return "", false
	}

	dir := 1
	if delta < 0 {
		dir = -1
	}
	for step := 1; step < n; step++ {
		i := ((start+dir*step)%n + n) % n
		if ring[i].Occupant != nil {
			return ring[i].Key, true
		}
	}
	return "", false
}

// Poll опрашивает источник ввода один раз за тик. Селекторы сами ничего
// не меняют, только запрашивают переход; за тик стартует не больше одного.
func (m *Manager) Poll(in InputSource) {
	if in == nil {
		return
	}
	key, pressed := in.PollKey()
	wheel := in.PollWheel()
	hide := in.PollHide()
	drop := in.PollDrop()

	switch {
	case pressed && m.SelectByKey(key):
	case wheel != 0 && m.SelectByWheel(wheel):
	case hide && m.toggleHidden():
	case drop:
		m.DropActive()
	}
}

func (m *Manager) toggleHidden() bool {
	if m.hidden {
		return m.ShowActive()
	}
	return m.HideActive()
}
