// Package server provides HTTP routing, middleware and the playlist read API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// The [BasicRouter] applies its middleware around the whole mux, so CORS preflights, rate limiting and request
// logging see every request, including ones that end in 404 or 405.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Playlist API
//
// [PlaylistHandler] serves:
//
//	GET /api/playlists/{id}        playlist JSON, 404 {"message":"Playlist not found"} when missing
//	GET /api/playlists/{id}/songs  song array ordered by id, possibly empty
//
// A non-integer id answers 404 {"message":"Invalid ID"} on both routes. Handlers read through the [Storage]
// interface, which [repositories.Store] satisfies; the storage handle is passed in at construction.
//
// [HealthHandler] serves GET /healthz.
//
// # Lifecycle
//
// [Server] wraps [http.Server] and shuts down gracefully when its context is cancelled.
package server
