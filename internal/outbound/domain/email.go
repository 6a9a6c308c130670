package domain

// Email is the rendered payload handed to the mail transport.
type Email struct {
	From    string
	To      string
	Subject string
	Text    string
}
