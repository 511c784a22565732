// Package log provides the logging abstraction used by lineship components.
//
// The engine never imports a logging library directly. It logs through the
// Logger interface, which is satisfied by the zerolog adapter in this package
// and by the no-op logger used when embedding lineship without output.
//
//	logger := log.NewZerologAdapter(zerolog.InfoLevel)
//	logger.Info("run finished", log.Int("records", 3))
package log
