package config

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader    websocket.Upgrader
	AllowOrigin func(origin string) bool
}

// NewWebSocket accepts any origin unless WS_ALLOWED_ORIGINS lists them,
// comma separated. The same list is used for CORS.
func NewWebSocket() (*WebSocket, error) {
	allowed := make(map[string]bool)
	if s, ok := lookupEnv("WS_ALLOWED_ORIGINS"); ok {
		for _, origin := range strings.Split(s, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowed[origin] = true
			}
		}
	}

	allowOrigin := func(origin string) bool {
		if len(allowed) == 0 {
			return true
		}
		return allowed[origin]
	}

	ws := &WebSocket{
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return allowOrigin(r.Header.Get("Origin"))
			},
		},
		AllowOrigin: allowOrigin,
	}

	return ws, nil
}
