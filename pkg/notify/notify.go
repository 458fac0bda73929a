// Package notify carries the short user-facing notices (toasts) the editing,
// sharing and responses surfaces emit after an action.
package notify

import "go.uber.org/zap"

// Variant styles a notice.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notice is one notification.
type Notice struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Variant     Variant `json:"variant"`
}

// Notifier receives notices.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(Notice)

// Notify calls fn when non-nil.
func (fn NotifierFunc) Notify(n Notice) {
	if fn != nil {
		fn(n)
	}
}

// Discard drops every notice.
var Discard Notifier = NotifierFunc(nil)

// Logger writes notices to a zap logger at info level, or warn for
// destructive notices.
func Logger(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return NotifierFunc(func(n Notice) {
		fields := []zap.Field{zap.String("description", n.Description)}
		if n.Variant == VariantDestructive {
			logger.Warn(n.Title, fields...)
			return
		}
		logger.Info(n.Title, fields...)
	})
}

// Multi fans a notice out to every non-nil notifier in order.
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(n Notice) {
		for _, target := range notifiers {
			if target != nil {
				target.Notify(n)
			}
		}
	})
}
