package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Kind is the attachment type a FileReference was taken from.
type Kind string

const (
	KindDocument Kind = "document"
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindVoice    Kind = "voice"
	KindSticker  Kind = "sticker"
	KindPhoto    Kind = "photo"
)

func (k Kind) String() string { return string(k) }

// FileReference points at one platform-hosted file. FileID is never empty.
// FileName, MimeType and FileSize are zero when the message did not carry them.
type FileReference struct {
	FileID       string
	FileUniqueID string
	Kind         Kind
	FileName     string
	MimeType     string
	FileSize     int64
}

// extractors run in precedence order; the first non-empty reference wins.
var extractors = []func(*tgbotapi.Message) *FileReference{
	fromDocument,
	fromVideo,
	fromAudio,
	fromVoice,
	fromSticker,
	fromPhoto,
}

// Extract returns the single file reference carried by msg, or nil when the
// message has no supported attachment.
func Extract(msg *tgbotapi.Message) *FileReference {
	if msg == nil {
		return nil
	}
	for _, extract := range extractors {
		if ref := extract(msg); ref != nil && strings.TrimSpace(ref.FileID) != "" {
			return ref
		}
	}
	return nil
}

func fromDocument(msg *tgbotapi.Message) *FileReference {
	d := msg.Document
	if d == nil {
		return nil
	}
	return &FileReference{
		FileID:       d.FileID,
		FileUniqueID: d.FileUniqueID,
		Kind:         KindDocument,
		FileName:     strings.TrimSpace(d.FileName),
		MimeType:     strings.TrimSpace(d.MimeType),
		FileSize:     int64(d.FileSize),
	}
}

func fromVideo(msg *tgbotapi.Message) *FileReference {
	v := msg.Video
	if v == nil {
		return nil
	}
	return &FileReference{
		FileID:       v.FileID,
		FileUniqueID: v.FileUniqueID,
		Kind:         KindVideo,
		FileName:     strings.TrimSpace(v.FileName),
		MimeType:     strings.TrimSpace(v.MimeType),
		FileSize:     int64(v.FileSize),
	}
}

func fromAudio(msg *tgbotapi.Message) *FileReference {
	a := msg.Audio
	if a == nil {
		return nil
	}
	name := strings.TrimSpace(a.FileName)
	if name == "" {
		name = strings.TrimSpace(a.Title)
	}
	return &FileReference{
		FileID:       a.FileID,
		FileUniqueID: a.FileUniqueID,
		Kind:         KindAudio,
		FileName:     name,
		MimeType:     strings.TrimSpace(a.MimeType),
		FileSize:     int64(a.FileSize),
	}
}

func fromVoice(msg *tgbotapi.Message) *FileReference {
	v := msg.Voice
	if v == nil {
		return nil
	}
	return &FileReference{
		FileID:       v.FileID,
		FileUniqueID: v.FileUniqueID,
		Kind:         KindVoice,
		MimeType:     strings.TrimSpace(v.MimeType),
		FileSize:     int64(v.FileSize),
	}
}

func fromSticker(msg *tgbotapi.Message) *FileReference {
	s := msg.Sticker
	if s == nil {
		return nil
	}
	ref := &FileReference{
		FileID:       s.FileID,
		FileUniqueID: s.FileUniqueID,
		Kind:         KindSticker,
		FileSize:     int64(s.FileSize),
	}
	if emoji := strings.TrimSpace(s.Emoji); emoji != "" {
		ref.FileName = "sticker_" + emoji
	}
	return ref
}

// fromPhoto takes the last size: the platform orders photo sizes from
// smallest to largest.
func fromPhoto(msg *tgbotapi.Message) *FileReference {
	if len(msg.Photo) == 0 {
		return nil
	}
	best := msg.Photo[len(msg.Photo)-1]
	return &FileReference{
		FileID:       best.FileID,
		FileUniqueID: best.FileUniqueID,
		Kind:         KindPhoto,
		FileSize:     int64(best.FileSize),
	}
}
