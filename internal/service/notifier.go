package service

// Notifier interface for WebSocket broadcasting (avoids import cycle)
type Notifier interface {
	NotifyForm(formID string, msgType string, payload interface{})
}
