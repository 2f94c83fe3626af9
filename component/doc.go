// Package component defines the lifecycle interface shared by the service's
// long-lived dependencies: the Gemini client, the object store and the HTTP
// server.
//
// Components are registered with a Registry, started in registration order,
// stopped in reverse order, and report health for the /health endpoint.
//
// # Interfaces
//
//   - Component: Start/Stop/Health lifecycle
//   - Describable: startup summary description
//   - RouteProvider: HTTP routes for the startup summary
package component
