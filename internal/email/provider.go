package email

// Provider sends email messages.
type Provider interface {
	Send(msg *Message) error
	Close() error
}
