package hatchclient

import "sync"

// NotificationKind is the severity of a user-facing notification.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyWarning NotificationKind = "warning"
	NotifyInfo    NotificationKind = "info"
)

// Notifier receives user-facing outcome messages. The client never depends
// on how they are rendered.
type Notifier interface {
	Notify(kind NotificationKind, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(kind NotificationKind, message string)

func (f NotifierFunc) Notify(kind NotificationKind, message string) {
	f(kind, message)
}

type nopNotifier struct{}

func (nopNotifier) Notify(NotificationKind, string) {}

// LogNotifier writes notifications to a Logger: errors at error level,
// warnings at warn level, everything else at info level.
type LogNotifier struct {
	Logger Logger
}

func (n LogNotifier) Notify(kind NotificationKind, message string) {
	switch kind {
	case NotifyError:
		n.Logger.Error(message, "kind", string(kind))
	case NotifyWarning:
		n.Logger.Warn(message, "kind", string(kind))
	default:
		n.Logger.Info(message, "kind", string(kind))
	}
}

// Notification is one recorded message.
type Notification struct {
	Kind    NotificationKind
	Message string
}

// RecordingNotifier keeps every notification in memory.
type RecordingNotifier struct {
	mu    sync.Mutex
	items []Notification
}

func (r *RecordingNotifier) Notify(kind NotificationKind, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, Notification{Kind: kind, Message: message})
}

// Notifications returns a copy of everything recorded so far.
func (r *RecordingNotifier) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}
