package server

import (
	"encoding/json"
	"net/http"

	"armory-server/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/players", h.handlePlayers)
	mux.HandleFunc("/debug/queue", h.handleQueue)
	mux.HandleFunc("/debug/drops", h.handleDrops)
}

// /debug/players - игроки, состояние контроллера и активное оружие
func (h *DebugHandler) handlePlayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Players())
}

// /debug/queue - дедлайны текущих фаз.
// Это куча: порядок в ответе не совпадает с порядком извлечения.
func (h *DebugHandler) handleQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.Queue())
}

// /debug/drops - все выброшенное оружие в мире
func (h *DebugHandler) handleDrops(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Service.DropsDump())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустая очередь), возвращаем пустой массив [], а не null
	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}
