package notify

import (
	"fmt"

	evbus "github.com/asaskevich/EventBus"
)

// Level is the toast severity the UI maps to its presentation.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
	LevelLoading Level = "loading"
)

const topic = "notifications"

// Event is one user-facing notification. Stores publish these instead of
// rendering anything themselves; whatever UI is attached subscribes.
type Event struct {
	Level   Level
	Message string
}

// Notifier is the event channel between stores and the presentation layer.
type Notifier struct {
	bus evbus.Bus
}

func New() *Notifier {
	return &Notifier{bus: evbus.New()}
}

// Subscribe registers a handler for all published events.
func (n *Notifier) Subscribe(fn func(Event)) error {
	return n.bus.Subscribe(topic, fn)
}

// Unsubscribe removes a previously registered handler.
func (n *Notifier) Unsubscribe(fn func(Event)) error {
	return n.bus.Unsubscribe(topic, fn)
}

func (n *Notifier) publish(level Level, msg string) {
	if n == nil {
		return
	}
	n.bus.Publish(topic, Event{Level: level, Message: msg})
}

func (n *Notifier) Success(msg string) { n.publish(LevelSuccess, msg) }
func (n *Notifier) Info(msg string)    { n.publish(LevelInfo, msg) }
func (n *Notifier) Loading(msg string) { n.publish(LevelLoading, msg) }

func (n *Notifier) Error(msg string) { n.publish(LevelError, msg) }

func (n *Notifier) Errorf(format string, args ...any) {
	n.publish(LevelError, fmt.Sprintf(format, args...))
}
