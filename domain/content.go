// Package domain contains core concepts of the relay.
// This file defines the two shapes authored content can take.
// No runtime, network, or platform logic should be added here.
package domain

import "strings"

type Shape int

const (
	ShapeText Shape = iota
	ShapeSegments
)

type SegmentKind string

const (
	SegmentText   SegmentKind = "text"
	SegmentUser   SegmentKind = "user"
	SegmentLink   SegmentKind = "link"
	SegmentOpaque SegmentKind = "opaque"
)

// Segment is one typed piece of segmented content.
// Opaque segments carry platform elements the relay never rewrites; their
// Text is only used for the plain-text fallback.
type Segment struct {
	Kind   SegmentKind
	Text   string
	UserID string
	URL    string
	Opaque any
}

func Text(s string) Segment {
	return Segment{Kind: SegmentText, Text: s}
}

func UserMention(userID string) Segment {
	return Segment{Kind: SegmentUser, UserID: userID}
}

func Link(text, url string) Segment {
	return Segment{Kind: SegmentLink, Text: text, URL: url}
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeMarkup makes typed text render literally in Slack markup.
func EscapeMarkup(text string) string {
	return markupEscaper.Replace(text)
}

// Content is either inline markup text or an ordered list of segments.
// Layout is owned by whoever flattened the segments and is carried through
// redaction untouched so the original structure can be rebuilt.
type Content struct {
	Shape    Shape
	Text     string
	Segments []Segment
	Layout   any
}

func InlineContent(text string) Content {
	return Content{Shape: ShapeText, Text: text}
}

func SegmentedContent(segments ...Segment) Content {
	return Content{Shape: ShapeSegments, Segments: segments}
}

// IsEmpty reports whether the content carries nothing worth posting.
func (c Content) IsEmpty() bool {
	return strings.TrimSpace(c.Plain()) == ""
}

// Plain renders the content as inline markup, used as the notification fallback.
// Segment text is what the user typed and is escaped; inline text already is.
func (c Content) Plain() string {
	if c.Shape == ShapeText {
		return c.Text
	}
	var b strings.Builder
	for _, s := range c.Segments {
		switch s.Kind {
		case SegmentUser:
			b.WriteString("<@" + s.UserID + ">")
		case SegmentLink:
			b.WriteString("<" + s.URL + "|" + EscapeMarkup(s.Text) + ">")
		case SegmentText:
			b.WriteString(EscapeMarkup(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
