package engine

import (
	"container/heap"
	"time"

	"armory-server/internal/domain"
)

// PhaseItem - игрок, у которого идет переход, и момент окончания текущей фазы.
type PhaseItem struct {
	Player   domain.PlayerID
	Deadline time.Duration // игровое время; чем меньше, тем раньше
	Index    int           // индекс в куче (нужен для Fix/Remove)
}

// PhaseQueue - min-heap по дедлайну, реализует heap.Interface.
type PhaseQueue []*PhaseItem

func (pq PhaseQueue) Len() int { return len(pq) }

func (pq PhaseQueue) Less(i, j int) bool {
	if pq[i].Deadline != pq[j].Deadline {
		return pq[i].Deadline < pq[j].Deadline
	}
	// Одинаковые дедлайны - порядок по id, чтобы реплей был детерминирован
	return pq[i].Player < pq[j].Player
}

func (pq PhaseQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PhaseQueue) Push(x any) {
	item := x.(*PhaseItem)
	item.Index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *PhaseQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[:n-1]
	return item
}

// Update меняет дедлайн элемента, уже лежащего в очереди.
func (pq *PhaseQueue) Update(item *PhaseItem, deadline time.Duration) {
	item.Deadline = deadline
	heap.Fix(pq, item.Index)
}
