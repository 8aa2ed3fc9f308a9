package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iandyone/minesweeper-rss/internal/mines"
	"github.com/iandyone/minesweeper-rss/internal/scores"
)

type RecordDTO struct {
	SessionID  uuid.UUID        `json:"session_id"`
	Complexity mines.Complexity `json:"complexity"`
	Elapsed    int64            `json:"elapsed"`
	Moves      int              `json:"moves"`
	FinishedAt int64            `json:"finished_at"`
}

type PresetDTO struct {
	Complexity mines.Complexity `json:"complexity"`
	Width      int              `json:"width"`
	Height     int              `json:"height"`
	MineCount  int              `json:"mine_count"`
	Next       mines.Complexity `json:"next"`
}

type ScoresHandler struct {
	log   logrus.FieldLogger
	store scores.Store
}

func NewScoresHandler(log logrus.FieldLogger, store scores.Store) *ScoresHandler {
	return &ScoresHandler{log: log, store: store}
}

// Recent lists the last results, newest first.
func (h *ScoresHandler) Recent(w http.ResponseWriter, r *http.Request) {
	log, err := h.store.Recent(r.Context())
	if err != nil {
		h.log.WithError(err).Error("unable to fetch results")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	res := make([]RecordDTO, 0, len(log))
	for _, rec := range log {
		res = append(res, RecordDTO{
			SessionID:  rec.SessionID,
			Complexity: rec.Complexity,
			Elapsed:    int64(rec.Elapsed.Seconds()),
			Moves:      rec.Moves,
			FinishedAt: rec.FinishedAt.UnixMilli(),
		})
	}
	sendJSONOrLog(w, h.log, res)
}

func (h *ScoresHandler) Presets(w http.ResponseWriter, r *http.Request) {
	res := make([]PresetDTO, 0, 3)
	for _, c := range mines.Complexities() {
		p, _ := c.Params()
		res = append(res, PresetDTO{
			Complexity: c,
			Width:      p.Width,
			Height:     p.Height,
			MineCount:  p.MineCount,
			Next:       c.Next(),
		})
	}
	sendJSONOrLog(w, h.log, res)
}
