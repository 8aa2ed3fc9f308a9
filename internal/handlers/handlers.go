package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"

	"github.com/iandyone/minesweeper-rss/internal/mines"
	"github.com/iandyone/minesweeper-rss/internal/session"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

func SendJSON(w http.ResponseWriter, status int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log logrus.FieldLogger, v any) {
	if _, err := SendJSON(w, http.StatusOK, v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithError(err).WithField("response", v).Error("unable to send response")
	}
}

func sendErrorOrLog(w http.ResponseWriter, log logrus.FieldLogger, status int, e error) {
	if _, err := SendJSON(w, status, wrapError(e)); err != nil {
		log.WithError(err).WithField("sent_error", e).Error("unable to send error message")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

// statusOf maps domain errors to response codes.
func statusOf(err error) int {
	var cfgErr *mines.ConfigurationError
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrGameOver),
		errors.Is(err, session.ErrStaleBoard):
		return http.StatusConflict
	case errors.Is(err, session.ErrHubFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, session.ErrOutOfBounds),
		errors.Is(err, session.ErrUnknownCommand),
		errors.Is(err, session.ErrBadArguments),
		errors.As(err, &cfgErr):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// sendError writes err with the matching status. Unexpected errors are
// logged and not exposed.
func sendError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("unable to handle request")
		w.WriteHeader(status)
		return
	}
	sendErrorOrLog(w, log, status, err)
}
