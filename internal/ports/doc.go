// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// # Port Interfaces
//
//   - [LineSource]: yields records from a line-oriented input
//   - [Sink]: transmits encoded frames to the remote endpoint
//   - [Logger]: structured logging abstraction
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters (internal/adapters, internal/transport) implement them with
// files, sockets and zerolog.
package ports
