// Package domain contains core concepts of the relay.
// This file defines relayed messages and where they live.
package domain

// Profile is what the platform tells us about a user.
type Profile struct {
	UserID      string
	DisplayName string
	RealName    string
	ImageURL    string
}

// Name prefers the display name; some users and all bots only have a real name.
func (p Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.RealName
}

// Location identifies exactly one posted message.
type Location struct {
	ChannelID string
	Timestamp string
}

// Rendered is a relayed message: an attribution preface naming the author
// followed by the redacted body. Fallback starts with the preface so the
// message text alone is enough to check ownership.
type Rendered struct {
	AuthorID string
	Preface  string
	Body     Content
	Fallback string
}

// Outgoing is a rendered message posted under a borrowed identity.
type Outgoing struct {
	ChannelID string
	ThreadTS  string
	Username  string
	IconURL   string
	Message   Rendered
}
