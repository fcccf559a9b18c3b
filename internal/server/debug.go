package server

import (
	"encoding/json"
	"net/http"
	"tactics-server/internal/engine"
	"tactics-server/pkg/logger"

	"github.com/gorilla/mux"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты на подроутере /debug
func (h *DebugHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/matches", h.handleListMatches).Methods(http.MethodGet)
	r.HandleFunc("/matches/{id}", h.handleMatchState).Methods(http.MethodGet)
	r.HandleFunc("/matches/{id}/turns", h.handleTurnOrder).Methods(http.MethodGet)
}

// MatchSummary - строка списка /debug/matches
type MatchSummary struct {
	ID       string `json:"id"`
	Session  string `json:"session"`
	Scenario string `json:"scenario"`
	Seed     int64  `json:"seed"`
	Turn     int    `json:"turn"`
	Outcome  string `json:"outcome"`
	Units    int    `json:"units"`

	Connected bool `json:"connected"` // у сессии есть подписчик в хабе
}

// /debug/matches - список запущенных матчей
func (h *DebugHandler) handleListMatches(w http.ResponseWriter, r *http.Request) {
	summary := make([]MatchSummary, 0)

	// Читаем только снимки: сам Match принадлежит горутине инстанса
	for _, inst := range h.Service.Instances() {
		snap := inst.Snapshot()
		summary = append(summary, MatchSummary{
			ID:       inst.ID,
			Session:  inst.Session,
			Scenario: inst.Scenario,
			Seed:     inst.Seed,
			Turn:     snap.Turn,
			Outcome:  snap.Outcome,
			Units:    len(snap.Units),

			Connected: h.Service.Hub.HasSubscriber(inst.Session),
		})
	}

	writeJSON(w, summary)
}

// /debug/matches/{id} - последний снимок матча
func (h *DebugHandler) handleMatchState(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.Service.FindMatch(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}
	writeJSON(w, inst.Snapshot())
}

// /debug/matches/{id}/turns - очередь ходов на момент последнего снимка
func (h *DebugHandler) handleTurnOrder(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.Service.FindMatch(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	}

	dump := inst.TurnsDump()
	if dump == nil {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, dump)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	// Если data == nil (например, пустая очередь), возвращаем пустой массив [], а не null
	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Warn("debug: encode response failed")
	}
}
