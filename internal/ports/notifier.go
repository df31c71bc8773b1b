package ports

import "context"

// Notification is a message addressed to one player account.
type Notification struct {
	UserID  string
	Subject string
	Content map[string]interface{}
}

// NotifierPort delivers out-of-band messages to players, e.g. that it is their turn.
type NotifierPort interface {
	Notify(ctx context.Context, n Notification) error
}
