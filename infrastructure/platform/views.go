package platform

import (
	"noping/domain"

	"github.com/slack-go/slack"
)

// Callback ids of the message shortcuts and of the modals they open.
const (
	ShortcutEdit   = "edit_message"
	ShortcutDelete = "delete_message"
	ShortcutReply  = "reply_in_thread"

	ViewEdit   = "edit_submit"
	ViewDelete = "delete_submit"
	ViewReply  = "reply_submit"

	bodyActionID = "body_input"
)

func plain(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}

func markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

func bodyInput(label string, initial *slack.RichTextBlock) *slack.InputBlock {
	element := slack.NewRichTextInputBlockElement(plain("Use @someone \\ to keep a ping"), bodyActionID)
	element.InitialValue = initial
	element.FocusOnLoad = true
	return slack.NewInputBlock(bodyBlockID, plain(label), nil, element)
}

// EditView is seeded with the current body of the relayed message.
func EditView(metadata string, current *slack.RichTextBlock) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      ViewEdit,
		Title:           plain("Edit message"),
		Submit:          plain("Save"),
		Close:           plain("Cancel"),
		Blocks:          slack.Blocks{BlockSet: []slack.Block{bodyInput("Message", current)}},
		PrivateMetadata: metadata,
		NotifyOnClose:   true,
	}
}

func DeleteView(metadata string) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: ViewDelete,
		Title:      plain("Delete message"),
		Submit:     plain("Delete"),
		Close:      plain("Cancel"),
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			slack.NewSectionBlock(markdown("Delete this message? This can't be undone."), nil, nil),
		}},
		PrivateMetadata: metadata,
		NotifyOnClose:   true,
	}
}

func ReplyView(metadata string) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      ViewReply,
		Title:           plain("Reply in thread"),
		Submit:          plain("Send"),
		Close:           plain("Cancel"),
		Blocks:          slack.Blocks{BlockSet: []slack.Block{bodyInput("Reply", nil)}},
		PrivateMetadata: metadata,
		NotifyOnClose:   true,
	}
}

// NoticeView replaces a submitted modal with an explanation.
func NoticeView(title, text string) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:   slack.VTModal,
		Title:  plain(title),
		Close:  plain("Close"),
		Blocks: slack.Blocks{BlockSet: []slack.Block{slack.NewSectionBlock(markdown(text), nil, nil)}},
	}
}

// SubmittedBody reads the rich text typed into a modal.
func SubmittedBody(view slack.View) domain.Content {
	if view.State == nil {
		return domain.SegmentedContent()
	}
	action, ok := view.State.Values[bodyBlockID][bodyActionID]
	if !ok {
		return domain.SegmentedContent()
	}
	return ContentFromRichText(action.RichTextValue)
}
