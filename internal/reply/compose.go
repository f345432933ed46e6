// Package reply builds the user-facing text the bot sends back for each
// processing outcome.
package reply

import "strings"

// Outcome is the closed set of results a processed message can end in.
type Outcome interface {
	outcome()
}

// Greeting answers the /start command.
type Greeting struct{}

// NoAttachment is returned for messages without a downloadable file.
type NoAttachment struct{}

// ResolutionFailed is returned when the platform refused to resolve the file.
// Reason is for logs only and is never rendered.
type ResolutionFailed struct {
	Reason string
}

// Success carries the resolved direct link and whatever metadata the
// message exposed. Empty fields are left out of the reply.
type Success struct {
	DirectLink string
	Kind       string
	FileName   string
	MimeType   string
	FileSize   int64
}

func (Greeting) outcome()         {}
func (NoAttachment) outcome()     {}
func (ResolutionFailed) outcome() {}
func (Success) outcome()          {}

const greetingText = `👋 Send me a file and I'll reply with a direct download link.
Supported: documents, videos, audio, voice messages, stickers and photos.
Upload the file straight into this chat.
Note: files forwarded from channels or chats that restrict saving content can't be accessed by bots.`

const noAttachmentText = `I couldn't find a file in that message.
Please upload the file directly to this chat using the 📎 button instead of forwarding it or pasting a link.`

const resolutionFailedText = `⚠️ I couldn't get a download link for this file.
This usually happens when:
• it was forwarded from a protected channel or group
• the bot isn't a member of the chat the file came from
• the sender restricts saving or forwarding their content
• the file is larger than the 20 MB bot download limit
Please upload the file directly to this chat and try again.`

// Compose renders the reply text for an outcome.
func Compose(o Outcome) string {
	switch v := o.(type) {
	case Greeting:
		return greetingText
	case NoAttachment:
		return noAttachmentText
	case ResolutionFailed:
		return resolutionFailedText
	case Success:
		return composeSuccess(v)
	default:
		return noAttachmentText
	}
}

func composeSuccess(s Success) string {
	return joinLines(
		"✅ Your download link is ready",
		field("Type", s.Kind),
		field("Name", s.FileName),
		field("MIME", s.MimeType),
		field("Size", FormatBytes(s.FileSize)),
		field("Link", s.DirectLink),
		"The link stays valid for at least one hour.",
	)
}

func field(label, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return label + ": " + value
}

// joinLines drops blank lines so absent fields never leave gaps.
func joinLines(lines ...string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
