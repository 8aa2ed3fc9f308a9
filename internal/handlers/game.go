package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/iandyone/minesweeper-rss/internal/config"
	"github.com/iandyone/minesweeper-rss/internal/mines"
	"github.com/iandyone/minesweeper-rss/internal/scores"
	"github.com/iandyone/minesweeper-rss/internal/session"
)

var (
	errBadSessionID  = errors.New("invalid session id")
	errBoardTooLarge = errors.New("board has too many cells")
)

type GameHandler struct {
	log      logrus.FieldLogger
	hub      *session.Hub
	store    scores.Store
	ws       *config.WebSocket
	maxCells int
}

// NewGameHandler serves games on boards of at most maxCells tiles; zero
// means no limit.
func NewGameHandler(
	log logrus.FieldLogger,
	hub *session.Hub,
	store scores.Store,
	ws *config.WebSocket,
	maxCells int,
) *GameHandler {
	handler := &GameHandler{
		log:      log,
		hub:      hub,
		store:    store,
		ws:       ws,
		maxCells: maxCells,
	}
	return handler
}

// apply runs fn on the session and renders the result. A game won by fn is
// appended to the score store.
func (g *GameHandler) apply(
	ctx context.Context,
	id uuid.UUID,
	fn func(*session.Session) (string, error),
) (*GameSessionDTO, error) {
	var (
		dto    *GameSessionDTO
		record scores.Record
		won    bool
	)
	err := g.hub.With(id, func(s *session.Session) error {
		wasWon := s.Won()
		outcome, err := fn(s)
		if err != nil {
			return err
		}
		dto = NewGameSessionDTO(s)
		dto.Outcome = outcome
		if !wasWon {
			record, won = s.Record()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if won {
		g.saveRecord(ctx, record)
	}
	return dto, nil
}

func (g *GameHandler) saveRecord(ctx context.Context, r scores.Record) {
	log := g.log.WithFields(logrus.Fields{
		"session":    r.SessionID,
		"complexity": r.Complexity,
		"elapsed":    r.Elapsed,
		"moves":      r.Moves,
	})
	err := g.store.Append(ctx, r)
	switch {
	case errors.Is(err, scores.ErrDuplicate):
		log.Debug("result already recorded")
	case err != nil:
		log.WithError(err).Error("unable to record result")
	default:
		log.Info("game won")
	}
}

func parseSessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, errBadSessionID
	}
	return id, nil
}

func openOutcome(s *session.Session, p mines.Point) (string, error) {
	res, err := s.Open(p)
	if err != nil {
		return "", err
	}
	return res.Outcome.String(), nil
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dto, err := ParseNewGameDTO(query)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	params, err := dto.Params()
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	if g.maxCells > 0 && params.Cells() > g.maxCells {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, errBoardTooLarge)
		return
	}

	first := mines.NoPoint
	if HasPoint(query) {
		pos, err := ParsePointDTO(query)
		if err != nil {
			sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
			return
		}
		if !params.PointInBounds(pos.Point()) {
			sendErrorOrLog(w, g.log, http.StatusBadRequest, session.ErrOutOfBounds)
			return
		}
		first = pos.Point()
	}

	id, err := g.hub.Create(params)
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	g.log.WithFields(logrus.Fields{
		"session": id,
		"params":  params.Seed(),
	}).Debug("session created")

	game, err := g.apply(r.Context(), id, func(s *session.Session) (string, error) {
		if first == mines.NoPoint {
			return "", nil
		}
		return openOutcome(s, first)
	})
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	sendJSONOrLog(w, g.log, game)
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionID(r)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	game, err := g.apply(r.Context(), id, func(*session.Session) (string, error) {
		return "", nil
	})
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	sendJSONOrLog(w, g.log, game)
}

func (g *GameHandler) move(
	w http.ResponseWriter,
	r *http.Request,
	fn func(*session.Session, mines.Point) (string, error),
) {
	id, err := parseSessionID(r)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	pos, err := ParsePointDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	boardID, err := pos.BoardID()
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	game, err := g.apply(r.Context(), id, func(s *session.Session) (string, error) {
		if boardID != uuid.Nil {
			if err := s.CheckBoard(boardID); err != nil {
				return "", err
			}
		}
		return fn(s, pos.Point())
	})
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	sendJSONOrLog(w, g.log, game)
}

func (g *GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, openOutcome)
}

func (g *GameHandler) Mark(w http.ResponseWriter, r *http.Request) {
	g.move(w, r, func(s *session.Session, p mines.Point) (string, error) {
		_, err := s.Mark(p)
		return "", err
	})
}

func (g *GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionID(r)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	next, err := g.hub.Restart(id)
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	game, err := g.apply(r.Context(), next, func(*session.Session) (string, error) {
		return "", nil
	})
	if err != nil {
		sendError(w, g.log, err)
		return
	}
	sendJSONOrLog(w, g.log, game)
}

// ConnectWS streams commands such as "o 3 4" over a websocket. Each message
// may hold several newline separated commands; the state after the last one
// is sent back.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, err := parseSessionID(r)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	err = g.hub.With(id, func(*session.Session) error { return nil })
	if err != nil {
		sendError(w, g.log, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer c.Close()

	log := g.log.WithField("session", id)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		text := strings.TrimSpace(string(message))
		log.Debugf("\t> %s", text)

		var reply any
		for _, line := range strings.Split(text, "\n") {
			game, err := g.apply(r.Context(), id, func(s *session.Session) (string, error) {
				return "", s.Execute(line)
			})
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					_ = c.WriteJSON(wrapError(err))
					return
				}
				reply = wrapError(err)
				break
			}
			reply = game
		}

		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Error("unable to write json")
			return
		}
		log.Debug("\t< <session data>")
	}
}
