// Package domain contains the core entities and value objects for lineship.
//
// This package is the innermost layer of the application. It has no
// dependencies on infrastructure concerns (sockets, files, logging) and
// contains only the data model of a replay run.
//
// # Entities
//
//   - [Record]: a single input line without its terminator
//   - [Batch]: an ordered, bounded group of records sent together
//   - [Frame]: the newline-delimited wire encoding of one batch
//   - [Endpoint]: a resolved IP and port
//   - [RunStats]: delivery counts and timing of a finished run
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
