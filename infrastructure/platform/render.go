package platform

import (
	"encoding/json"
	"noping/domain"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/slack-go/slack"
)

const (
	prefaceBlockID = "preface"
	bodyBlockID    = "body"
)

// mrkdwnEntity matches <target> and <target|label> in Slack markup.
var mrkdwnEntity = regexp.MustCompile(`<([^<>|]+)(?:\|([^<>]*))?>`)

var mrkdwnUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")

// richTextLayout remembers the rich text structure segments were flattened from.
// sizes holds the number of segments of each leaf container, in document order.
type richTextLayout struct {
	block slack.RichTextBlock
	sizes []int
}

// MessageBlocks renders the preface as a context line above the body.
func MessageBlocks(message domain.Rendered) []slack.Block {
	preface := slack.NewContextBlock(prefaceBlockID,
		slack.NewTextBlockObject(slack.MarkdownType, message.Preface, false, false))

	if message.Body.Shape == domain.ShapeSegments {
		return []slack.Block{preface, RichTextFromContent(message.Body)}
	}
	body := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, message.Body.Text, false, false), nil, nil)
	body.BlockID = bodyBlockID
	return []slack.Block{preface, body}
}

// ContentFromRichText flattens a rich text block into segments. Containers
// are separated by an opaque line break so a mention never sees the next
// paragraph as its successor.
func ContentFromRichText(block slack.RichTextBlock) domain.Content {
	layout := richTextLayout{block: cloneRichText(block)}
	var segments []domain.Segment
	for i, leaf := range leaves(layout.block.Elements) {
		if i > 0 {
			segments = append(segments, domain.Segment{Kind: domain.SegmentOpaque, Text: "\n"})
		}
		segments = append(segments, lo.Map(*leaf, func(e slack.RichTextSectionElement, _ int) domain.Segment {
			return segmentFromElement(e)
		})...)
		layout.sizes = append(layout.sizes, len(*leaf))
	}

	content := domain.SegmentedContent(segments...)
	content.Layout = layout
	return content
}

// RichTextFromContent rebuilds the rich text block, reusing the original
// structure when the content was flattened from one.
func RichTextFromContent(content domain.Content) *slack.RichTextBlock {
	layout, ok := content.Layout.(richTextLayout)
	if ok && lo.Sum(layout.sizes)+max(len(layout.sizes)-1, 0) == len(content.Segments) {
		block := cloneRichText(layout.block)
		block.BlockID = bodyBlockID
		containers := leaves(block.Elements)
		if len(containers) != len(layout.sizes) {
			return flatRichText(content)
		}
		pos := 0
		for i, leaf := range containers {
			if i > 0 {
				pos++
			}
			*leaf = elementsFromSegments(content.Segments[pos : pos+layout.sizes[i]])
			pos += layout.sizes[i]
		}
		return &block
	}
	return flatRichText(content)
}

// flatRichText puts every segment into a single section.
func flatRichText(content domain.Content) *slack.RichTextBlock {
	segments := lo.Filter(content.Segments, func(s domain.Segment, _ int) bool {
		return s.Kind != domain.SegmentOpaque || s.Opaque != nil
	})
	return slack.NewRichTextBlock(bodyBlockID, slack.NewRichTextSection(elementsFromSegments(segments)...))
}

// BodyFromBlocks recovers the editable body of a relayed message.
func BodyFromBlocks(blocks slack.Blocks) *slack.RichTextBlock {
	for _, b := range blocks.BlockSet {
		switch block := b.(type) {
		case *slack.RichTextBlock:
			clone := cloneRichText(*block)
			return &clone
		case *slack.SectionBlock:
			if block.Text == nil {
				continue
			}
			return slack.NewRichTextBlock(bodyBlockID, slack.NewRichTextSection(ElementsFromMrkdwn(block.Text.Text)...))
		}
	}
	return nil
}

// ElementsFromMrkdwn turns Slack markup into rich text elements: user
// mentions, channel references and links become typed elements, the rest is text.
func ElementsFromMrkdwn(text string) []slack.RichTextSectionElement {
	var out []slack.RichTextSectionElement
	appendText := func(s string) {
		if s != "" {
			out = append(out, slack.NewRichTextSectionTextElement(mrkdwnUnescaper.Replace(s), nil))
		}
	}

	last := 0
	for _, m := range mrkdwnEntity.FindAllStringSubmatchIndex(text, -1) {
		appendText(text[last:m[0]])
		target := text[m[2]:m[3]]
		label := ""
		if m[4] >= 0 {
			label = mrkdwnUnescaper.Replace(text[m[4]:m[5]])
		}
		switch {
		case strings.HasPrefix(target, "@"):
			out = append(out, slack.NewRichTextSectionUserElement(strings.TrimPrefix(target, "@"), nil))
		case strings.HasPrefix(target, "#"):
			out = append(out, slack.NewRichTextSectionChannelElement(strings.TrimPrefix(target, "#"), nil))
		case strings.HasPrefix(target, "!"):
			appendText("@" + strings.SplitN(strings.TrimPrefix(target, "!"), "^", 2)[0])
		default:
			out = append(out, slack.NewRichTextSectionLinkElement(target, label, nil))
		}
		last = m[1]
	}
	appendText(text[last:])
	return out
}

func segmentFromElement(e slack.RichTextSectionElement) domain.Segment {
	switch el := e.(type) {
	case *slack.RichTextSectionTextElement:
		return domain.Segment{Kind: domain.SegmentText, Text: el.Text, Opaque: el}
	case *slack.RichTextSectionUserElement:
		return domain.Segment{Kind: domain.SegmentUser, UserID: el.UserID, Opaque: el}
	case *slack.RichTextSectionLinkElement:
		return domain.Segment{Kind: domain.SegmentLink, Text: el.Text, URL: el.URL, Opaque: el}
	case *slack.RichTextSectionEmojiElement:
		return domain.Segment{Kind: domain.SegmentOpaque, Text: ":" + el.Name + ":", Opaque: el}
	case *slack.RichTextSectionChannelElement:
		return domain.Segment{Kind: domain.SegmentOpaque, Text: "<#" + el.ChannelID + ">", Opaque: el}
	default:
		return domain.Segment{Kind: domain.SegmentOpaque, Opaque: e}
	}
}

func elementsFromSegments(segments []domain.Segment) []slack.RichTextSectionElement {
	return lo.FilterMap(segments, func(s domain.Segment, _ int) (slack.RichTextSectionElement, bool) {
		if original, ok := s.Opaque.(slack.RichTextSectionElement); ok {
			return original, true
		}
		switch s.Kind {
		case domain.SegmentText:
			return slack.NewRichTextSectionTextElement(s.Text, nil), true
		case domain.SegmentUser:
			return slack.NewRichTextSectionUserElement(s.UserID, nil), true
		case domain.SegmentLink:
			return slack.NewRichTextSectionLinkElement(s.URL, s.Text, nil), true
		default:
			return nil, false
		}
	})
}

// leaves returns the element lists of every rich text container, in document order.
func leaves(elements []slack.RichTextElement) []*[]slack.RichTextSectionElement {
	var out []*[]slack.RichTextSectionElement
	for _, e := range elements {
		switch el := e.(type) {
		case *slack.RichTextSection:
			out = append(out, &el.Elements)
		case *slack.RichTextQuote:
			out = append(out, &el.Elements)
		case *slack.RichTextPreformatted:
			out = append(out, &el.Elements)
		case *slack.RichTextList:
			out = append(out, leaves(el.Elements)...)
		}
	}
	return out
}

// cloneRichText deep copies a block so rebuilding never mutates the input.
func cloneRichText(block slack.RichTextBlock) slack.RichTextBlock {
	raw, err := json.Marshal(block)
	if err != nil {
		return block
	}
	var clone slack.RichTextBlock
	if err := json.Unmarshal(raw, &clone); err != nil {
		return block
	}
	return clone
}
