package session

import (
	"net/http"
	dto "slot_machine/internal/api/dto/session"
	"slot_machine/internal/converter"
	"slot_machine/internal/repository"
	"slot_machine/internal/service"
	"slot_machine/pkg/req"
	"slot_machine/pkg/resp"
	"strconv"
)

type HandlerDeps struct {
	Serv    service.SessionService
	Stats   repository.StatsRepository
	Journal repository.SpinRepository
}

type Handler struct {
	serv    service.SessionService
	stats   repository.StatsRepository
	journal repository.SpinRepository
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, stats: deps.Stats, journal: deps.Journal}
}

// Spin отправляет команду старта. Отклонённый старт не ошибка: клиент видит состояние сессии
func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	h.serv.StartSpin(r.Context())
	resp.WriteJSONResponse(w, http.StatusAccepted, converter.ToStateResponse(h.serv.State()))
}

func (h *Handler) ChangeBet(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ChangeBetRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.serv.ChangeBet(r.Context(), payload.Delta)
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(h.serv.State()))
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStateResponse(h.serv.State()))
}

func (h *Handler) Grid(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToGridResponse(h.serv.GetSymbolGrid()))
}

func (h *Handler) Paylines(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPaylinesResponse(h.serv.Paylines()))
}

func (h *Handler) LastSpin(w http.ResponseWriter, r *http.Request) {
	result, ok := h.serv.LastResult()
	if !ok {
		resp.WriteError(w, http.StatusNotFound, "no spins yet")
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(result))
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	spins, err := h.journal.List(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponses(spins))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.stats.Stats()))
}
