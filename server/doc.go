// Package server provides the HTTP server for transcribealpha: a Gin engine
// mounted on a ServeMux behind h2c, with a net/http middleware chain applied
// at the server level so every route gets recovery, request IDs, CORS, a
// body size limit and request logging.
//
// The server implements component.Component, component.Describable and
// component.RouteProvider so bootstrap starts it, stops it and lists its
// routes in the startup summary.
package server
