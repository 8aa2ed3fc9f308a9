package app

import (
	"github.com/iandyone/minesweeper-rss/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.hub, a.store, a.ws, a.sessions.MaxBoardCells,
	)
	results := handlers.NewScoresHandler(a.log, a.store)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/open", game.Open)
	a.router.HandleFunc("POST /game/{id}/mark", game.Mark)
	a.router.HandleFunc("POST /game/{id}/restart", game.Restart)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET /scores", results.Recent)
	a.router.HandleFunc("GET /presets", results.Presets)
}
