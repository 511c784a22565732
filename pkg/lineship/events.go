package lineship

import "time"

// EventHandler receives notifications about sends.
// Methods are called synchronously on the replay goroutine and must return quickly.
type EventHandler interface {
	OnBatchSent(event BatchSentEvent)
	OnSendError(event SendErrorEvent)
}

// BatchSentEvent describes one delivered frame.
type BatchSentEvent struct {
	Records  int
	Bytes    int
	Duration time.Duration
}

// SendErrorEvent describes the failed send that ended a run.
type SendErrorEvent struct {
	Error   error
	Records int
}

// BaseEventHandler implements EventHandler with no-op methods.
// Embed it to override only the events you need.
type BaseEventHandler struct{}

func (BaseEventHandler) OnBatchSent(BatchSentEvent) {}
func (BaseEventHandler) OnSendError(SendErrorEvent) {}

// eventEmitterWrapper adapts EventHandler to the internal emitter interface.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e eventEmitterWrapper) OnBatchSent(records, bytesSent int, duration time.Duration) {
	e.handler.OnBatchSent(BatchSentEvent{Records: records, Bytes: bytesSent, Duration: duration})
}

func (e eventEmitterWrapper) OnSendError(err error, records int) {
	e.handler.OnSendError(SendErrorEvent{Error: err, Records: records})
}
