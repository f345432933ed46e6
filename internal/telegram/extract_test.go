package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestExtractNil(t *testing.T) {
	t.Parallel()

	if ref := Extract(nil); ref != nil {
		t.Fatalf("expected nil for nil message, got %#v", ref)
	}
	if ref := Extract(&tgbotapi.Message{Text: "hello"}); ref != nil {
		t.Fatalf("expected nil for text message, got %#v", ref)
	}
}

func TestExtractPhotoUsesLastSize(t *testing.T) {
	t.Parallel()

	msg := &tgbotapi.Message{
		Photo: []tgbotapi.PhotoSize{
			{FileID: "small", FileSize: 1000},
			{FileID: "medium", FileSize: 5000},
			{FileID: "large", FileSize: 20000},
		},
	}
	ref := Extract(msg)
	if ref == nil {
		t.Fatalf("expected photo reference")
	}
	if ref.FileID != "large" || ref.Kind != KindPhoto || ref.FileSize != 20000 {
		t.Fatalf("unexpected reference: %#v", ref)
	}
	if ref.FileName != "" || ref.MimeType != "" {
		t.Fatalf("photo should carry no name or mime: %#v", ref)
	}
}

func TestExtractPrecedence(t *testing.T) {
	t.Parallel()

	msg := &tgbotapi.Message{
		Document: &tgbotapi.Document{FileID: "doc"},
		Video:    &tgbotapi.Video{FileID: "vid"},
		Photo:    []tgbotapi.PhotoSize{{FileID: "pic"}},
	}
	ref := Extract(msg)
	if ref == nil || ref.FileID != "doc" || ref.Kind != KindDocument {
		t.Fatalf("document should win, got %#v", ref)
	}

	msg.Document = nil
	if ref := Extract(msg); ref == nil || ref.Kind != KindVideo {
		t.Fatalf("video should win over photo, got %#v", ref)
	}
}

func TestExtractKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		msg  *tgbotapi.Message
		want FileReference
	}{
		{
			name: "document",
			msg: &tgbotapi.Message{Document: &tgbotapi.Document{
				FileID: "d1", FileName: "report.pdf", MimeType: "application/pdf", FileSize: 1536,
			}},
			want: FileReference{FileID: "d1", Kind: KindDocument, FileName: "report.pdf", MimeType: "application/pdf", FileSize: 1536},
		},
		{
			name: "video",
			msg: &tgbotapi.Message{Video: &tgbotapi.Video{
				FileID: "v1", FileName: "clip.mp4", MimeType: "video/mp4", FileSize: 2048,
			}},
			want: FileReference{FileID: "v1", Kind: KindVideo, FileName: "clip.mp4", MimeType: "video/mp4", FileSize: 2048},
		},
		{
			name: "audio falls back to title",
			msg: &tgbotapi.Message{Audio: &tgbotapi.Audio{
				FileID: "a1", Title: "Song", MimeType: "audio/mpeg",
			}},
			want: FileReference{FileID: "a1", Kind: KindAudio, FileName: "Song", MimeType: "audio/mpeg"},
		},
		{
			name: "audio prefers file name",
			msg: &tgbotapi.Message{Audio: &tgbotapi.Audio{
				FileID: "a2", Title: "Song", FileName: "song.mp3",
			}},
			want: FileReference{FileID: "a2", Kind: KindAudio, FileName: "song.mp3"},
		},
		{
			name: "voice",
			msg: &tgbotapi.Message{Voice: &tgbotapi.Voice{
				FileID: "vo1", MimeType: "audio/ogg", FileSize: 300,
			}},
			want: FileReference{FileID: "vo1", Kind: KindVoice, MimeType: "audio/ogg", FileSize: 300},
		},
		{
			name: "sticker with emoji",
			msg:  &tgbotapi.Message{Sticker: &tgbotapi.Sticker{FileID: "s1", Emoji: "🙂"}},
			want: FileReference{FileID: "s1", Kind: KindSticker, FileName: "sticker_🙂"},
		},
		{
			name: "sticker without emoji",
			msg:  &tgbotapi.Message{Sticker: &tgbotapi.Sticker{FileID: "s2"}},
			want: FileReference{FileID: "s2", Kind: KindSticker},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ref := Extract(tc.msg)
			if ref == nil {
				t.Fatalf("expected reference")
			}
			if *ref != tc.want {
				t.Fatalf("got %#v want %#v", *ref, tc.want)
			}
		})
	}
}

func TestExtractSkipsEmptyFileID(t *testing.T) {
	t.Parallel()

	msg := &tgbotapi.Message{
		Document: &tgbotapi.Document{FileID: ""},
		Voice:    &tgbotapi.Voice{FileID: "voice-1"},
	}
	ref := Extract(msg)
	if ref == nil || ref.Kind != KindVoice {
		t.Fatalf("empty document id should fall through to voice, got %#v", ref)
	}

	if ref := Extract(&tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "ok"}, {FileID: " "}}}); ref != nil {
		t.Fatalf("photo with blank last id should yield nil, got %#v", ref)
	}
}
