// Package eventbus wraps the process-wide event bus used to fan out pipeline
// progress and completion events. Delivery is synchronous: subscribers run on
// the publishing goroutine, which keeps per-run progress events in order.
package eventbus

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"
)

// Topics published by the generation pipeline.
const (
	// TopicProgress carries (runID string, completed int, total int, name string)
	// after each rendered entry.
	TopicProgress = "icon.progress"
	// TopicCompleted carries (runID string, status string) when a run reaches
	// a terminal state.
	TopicCompleted = "icon.completed"
)

var (
	instance evbus.Bus
	once     sync.Once
)

// Get returns the shared bus instance.
func Get() evbus.Bus {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New creates an independent bus, for callers that do not want the shared one.
func New() evbus.Bus {
	return evbus.New()
}

func Publish(topic string, args ...interface{}) {
	Get().Publish(topic, args...)
}

func Subscribe(topic string, fn interface{}) error {
	return Get().Subscribe(topic, fn)
}

func Unsubscribe(topic string, fn interface{}) error {
	return Get().Unsubscribe(topic, fn)
}
