package domain

// SendCommand relays a new message. TeamDomain builds profile links.
type SendCommand struct {
	UserID     string `validate:"required"`
	UserName   string
	ChannelID  string `validate:"required"`
	ThreadTS   string
	TeamDomain string `validate:"required"`
	Body       Content
}

// ActionCommand is a shortcut invoked on an already relayed message.
type ActionCommand struct {
	UserID      string `validate:"required"`
	ChannelID   string `validate:"required"`
	MessageTS   string `validate:"required"`
	ThreadTS    string
	MessageText string
}

// SubmitCommand is a modal submission carrying the token issued when it opened.
type SubmitCommand struct {
	UserID     string `validate:"required"`
	UserName   string
	TeamDomain string `validate:"required"`
	Metadata   string `validate:"required"`
	Body       Content
}

// Decision is the outcome of opening an edit, delete or reply.
// Metadata is only set when the requester is authorized.
type Decision struct {
	Authorized bool
	Metadata   string
}
