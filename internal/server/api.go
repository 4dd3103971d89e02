package server

import (
	"github.com/charmbracelet/log"
)

// APIStorage is the storage handle passed to [NewAPI].
type APIStorage interface {
	Storage
	Pinger
}

// APIOptions configures the middleware stack of [NewAPI].
type APIOptions struct {
	AllowedOrigins []string
	RateLimit      float64
	RateBurst      int
}

// NewAPI assembles the router for the playlist API.
func NewAPI(storage APIStorage, opts APIOptions, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(
		RequestID(),
		Logger(logger),
		Recover(logger),
		CORS(opts.AllowedOrigins),
		RateLimit(opts.RateLimit, opts.RateBurst),
	)

	router.Handler(NewHealthHandler(storage))
	router.Handler(NewPlaylistHandler(storage, logger))
	router.NotFound(NotFoundHandler())
	return router
}
