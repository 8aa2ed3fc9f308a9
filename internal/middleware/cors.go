package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

func Cors(allowOrigin func(origin string) bool) Middleware {
	options := cors.Options{
		AllowOriginFunc: allowOrigin,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"*"},
	}
	return cors.New(options).Handler
}
