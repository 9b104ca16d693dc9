package services

// Notifier receives events after a write has been committed.
type Notifier interface {
	Broadcast(event string, data interface{})
}

type noopNotifier struct{}

func (noopNotifier) Broadcast(string, interface{}) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
