package mention

import (
	"context"
	"fmt"
	"log/slog"
	"noping/contract"
	"noping/domain"

	"github.com/dlclark/regexp2"
)

// PlaceholderName is shown when a segmented mention cannot be resolved to a name.
const PlaceholderName = "PlaceholderUsername"

// escapeExpr is an optional single space then a backslash. Both content shapes
// check it right after a mention.
const escapeExpr = ` ?\\`

var (
	// inlineMention matches <@USERID|namehint> unless the escape marker follows.
	// The lookahead does not consume, the backslash stays in the output.
	inlineMention = regexp2.MustCompile(
		`<@(?<user_id>[^|<>]*)\|(?<username>[a-z0-9._-]{1,21})>(?!`+escapeExpr+`)`,
		regexp2.None,
	)
	escapeMarker = regexp2.MustCompile(`^`+escapeExpr, regexp2.None)
)

// Redactor rewrites user mentions into profile links so relayed messages do
// not notify anyone.
type Redactor struct {
	resolver contract.IdentityResolver
	log      *slog.Logger
}

// NewRedactor accepts a nil resolver, names then come from the content itself.
func NewRedactor(resolver contract.IdentityResolver, log *slog.Logger) *Redactor {
	return &Redactor{resolver: resolver, log: log}
}

// Redact returns content of the same shape with every unescaped mention
// replaced by a link to the user's profile in the given workspace.
func (r *Redactor) Redact(ctx context.Context, content domain.Content, workspace string) (domain.Content, error) {
	switch content.Shape {
	case domain.ShapeText:
		text, err := r.RedactText(ctx, content.Text, workspace)
		if err != nil {
			return domain.Content{}, err
		}
		content.Text = text
		return content, nil
	case domain.ShapeSegments:
		content.Segments = r.RedactSegments(ctx, content.Segments, workspace)
		return content, nil
	default:
		return domain.Content{}, fmt.Errorf("unknown content shape %d", content.Shape)
	}
}

// RedactText rewrites inline mention tokens in a single left-to-right pass.
func (r *Redactor) RedactText(ctx context.Context, text, workspace string) (string, error) {
	out, err := inlineMention.ReplaceFunc(text, func(m regexp2.Match) string {
		userID := m.GroupByName("user_id").String()
		name := r.name(ctx, userID, m.GroupByName("username").String())
		return "<" + ProfileURL(workspace, userID) + "|@" + domain.EscapeMarkup(name) + ">"
	}, -1, -1)
	if err != nil {
		return "", fmt.Errorf("mention replacement failed: %w", err)
	}
	return out, nil
}

// RedactSegments replaces mention segments in place with link segments.
// A mention stays live when the next segment is text starting with the escape marker.
func (r *Redactor) RedactSegments(ctx context.Context, segments []domain.Segment, workspace string) []domain.Segment {
	out := make([]domain.Segment, len(segments))
	copy(out, segments)

	for i, s := range segments {
		if s.Kind != domain.SegmentUser {
			continue
		}
		if i+1 < len(segments) && segments[i+1].Kind == domain.SegmentText && Escaped(segments[i+1].Text) {
			continue
		}
		name := r.name(ctx, s.UserID, PlaceholderName)
		out[i] = domain.Link("@"+name, ProfileURL(workspace, s.UserID))
	}
	return out
}

// Escaped reports whether text begins with the escape marker.
func Escaped(text string) bool {
	ok, err := escapeMarker.MatchString(text)
	return err == nil && ok
}

// ProfileURL is the profile page of a user in a workspace.
func ProfileURL(workspace, userID string) string {
	return fmt.Sprintf("https://%s.slack.com/team/%s", workspace, userID)
}

// name falls back from the display name to the real name, then to fallback
// when there is no resolver or the lookup fails.
func (r *Redactor) name(ctx context.Context, userID, fallback string) string {
	if r.resolver == nil {
		return fallback
	}
	profile, err := r.resolver.Resolve(ctx, userID)
	if err != nil {
		r.log.Warn("Unable to resolve mentioned user", "user_id", userID, "error", err)
		return fallback
	}
	if name := profile.Name(); name != "" {
		return name
	}
	return fallback
}
