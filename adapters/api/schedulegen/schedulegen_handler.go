package schedulegen_handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/claritycare/roster-engine/adapters/api"
	"github.com/claritycare/roster-engine/core/engine"
	"github.com/claritycare/roster-engine/core/ports"
)

// ScheduleGenHandler exposes the engine as a single trigger endpoint: snapshot
// the store for a date, run the generator, return the result. It carries no
// business logic of its own — that all lives in core/engine.
type ScheduleGenHandler struct {
	snapshot ports.SchedulingSnapshotPort
	learning ports.LearningServicePort
	cfg      engine.Config
}

func NewScheduleGenHandler(snapshot ports.SchedulingSnapshotPort, learning ports.LearningServicePort, cfg engine.Config) *ScheduleGenHandler {
	return &ScheduleGenHandler{snapshot: snapshot, learning: learning, cfg: cfg}
}

func (h *ScheduleGenHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/schedules/generate", h.handleGenerate)
}

type generateRequest struct {
	Date string  `json:"date"`
	Seed *uint64 `json:"seed,omitempty"`
}

type generateResponse struct {
	Schedule    any      `json:"schedule"`
	Violations  any      `json:"violations"`
	Generations int      `json:"generations"`
	BestFitness float64  `json:"bestFitness"`
	Success     bool     `json:"success"`
	Status      string   `json:"status"`
}

func (h *ScheduleGenHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	rw := api.NewResponseWriter(w)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.WriteBadRequest("invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		rw.WriteBadRequest("invalid date format: use YYYY-MM-DD")
		return
	}

	snapshot, err := h.snapshot.Load(date)
	if err != nil {
		rw.WriteError(err, http.StatusInternalServerError)
		return
	}

	cfg := h.cfg
	result := engine.Run(engine.RunInput{
		Date:         date,
		Clients:      snapshot.Clients,
		Therapists:   snapshot.Therapists,
		Callouts:     snapshot.Callouts,
		BaseSchedule: snapshot.BaseSchedule,
		Learning:     h.learning,
		Cfg:          &cfg,
		Seed:         req.Seed,
	})

	status := http.StatusOK
	if result.Status != engine.StatusOK {
		status = http.StatusUnprocessableEntity
	}

	if err := rw.WriteJSON(generateResponse{
		Schedule:    result.Schedule,
		Violations:  result.Violations,
		Generations: result.Generations,
		BestFitness: result.BestFitness,
		Success:     result.Success,
		Status:      result.Status,
	}, status); err != nil {
		rw.WriteError(err, http.StatusInternalServerError)
	}
}
