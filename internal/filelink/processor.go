// Package filelink turns one inbound webhook update into a direct download
// link reply.
package filelink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/RajAryanIITBHU/file-to-link/internal/config"
	"github.com/RajAryanIITBHU/file-to-link/internal/reply"
	"github.com/RajAryanIITBHU/file-to-link/internal/telegram"
)

// Acknowledgment reasons.
const (
	ReasonMalformed     = "malformed update"
	ReasonNoFile        = "no file object"
	ReasonGetFileFailed = "getFile failed"
)

const startCommand = "/start"

// Bot is the subset of the platform client the processor needs.
type Bot interface {
	ResolveFile(ctx context.Context, fileID string) (telegram.ResolvedPath, error)
	DirectLink(filePath string) string
	SendMessage(ctx context.Context, chatID int64, text string, opts telegram.SendOptions) error
}

// Ack is the JSON body returned to the webhook caller.
type Ack struct {
	OK       bool   `json:"ok"`
	Reason   string `json:"reason,omitempty"`
	FileLink string `json:"fileLink,omitempty"`
}

// Result pairs an Ack with the HTTP status it should be sent with.
type Result struct {
	Status int
	Ack    Ack
}

func acknowledged(reason string) Result {
	return Result{Status: http.StatusOK, Ack: Ack{OK: true, Reason: reason}}
}

// Processor handles webhook updates. It keeps no state between calls and is
// safe for concurrent use.
type Processor struct {
	bot          Bot
	secret       string
	secretHeader string
	logger       *slog.Logger
	newEventID   func() string
}

// NewProcessor builds a Processor from the Telegram section of the config.
func NewProcessor(log *slog.Logger, cfg config.TelegramConfig, bot Bot) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		bot:          bot,
		secret:       strings.TrimSpace(cfg.WebhookSecret),
		secretHeader: cfg.SecretHeader,
		logger:       log.With(slog.String("component", "filelink")),
		newEventID:   uuid.NewString,
	}
}

// Authorize reports whether headers carry the configured webhook secret.
// It always succeeds when no secret is configured.
func (p *Processor) Authorize(headers http.Header) bool {
	return telegram.VerifyWebhook(headers, p.secretHeader, p.secret)
}

// Unauthorized is the result for a call that failed Authorize.
func Unauthorized() Result {
	return Result{Status: http.StatusUnauthorized, Ack: Ack{OK: false}}
}

// Malformed is the result for a body that could not be read or decoded.
func Malformed() Result {
	return acknowledged(ReasonMalformed)
}

// Process authorizes and handles one raw update.
func (p *Processor) Process(ctx context.Context, body []byte, headers http.Header) Result {
	if !p.Authorize(headers) {
		p.logger.Warn("webhook secret mismatch")
		return Unauthorized()
	}
	return p.Handle(ctx, body)
}

// Handle processes an already authorized update. Replies are sent before it
// returns; a failed reply never changes the result.
func (p *Processor) Handle(ctx context.Context, body []byte) (result Result) {
	log := p.logger.With(slog.String("event_id", p.newEventID()))
	defer func() {
		if r := recover(); r != nil {
			log.Error("update processing panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			result = Result{Status: http.StatusInternalServerError, Ack: Ack{OK: false}}
		}
	}()

	// Inbound cancellation must not abort a half-finished reply.
	ctx = context.WithoutCancel(ctx)

	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		log.Warn("malformed update", slog.Any("error", err))
		return Malformed()
	}
	msg := update.Message
	if msg == nil {
		msg = update.EditedMessage
	}
	if msg == nil {
		log.Debug("update ignored", slog.Int("update_id", update.UpdateID))
		return acknowledged("")
	}
	if msg.Chat == nil {
		log.Warn("message without chat", slog.Int("update_id", update.UpdateID))
		return Malformed()
	}

	log = log.With(
		slog.Int("update_id", update.UpdateID),
		slog.Int64("chat_id", msg.Chat.ID),
		slog.Int("message_id", msg.MessageID),
	)
	to := target{chatID: msg.Chat.ID, messageID: msg.MessageID}

	if strings.TrimSpace(msg.Text) == startCommand {
		p.reply(ctx, log, to, reply.Greeting{})
		return acknowledged("")
	}

	ref := telegram.Extract(msg)
	if ref == nil {
		log.Info("no file in message")
		p.reply(ctx, log, to, reply.NoAttachment{})
		return acknowledged(ReasonNoFile)
	}
	log = log.With(slog.String("kind", ref.Kind.String()), slog.String("file_id", ref.FileID))

	resolved, err := p.bot.ResolveFile(ctx, ref.FileID)
	if err != nil {
		logResolutionError(log, err)
		p.reply(ctx, log, to, reply.ResolutionFailed{Reason: err.Error()})
		return acknowledged(ReasonGetFileFailed)
	}

	link := p.bot.DirectLink(resolved.FilePath)
	size := ref.FileSize
	if size <= 0 {
		size = resolved.FileSize
	}
	log.Info("file resolved", slog.String("file_path", resolved.FilePath), slog.Int64("file_size", size))
	log.Debug("direct link", slog.String("link", link))

	p.reply(ctx, log, to, reply.Success{
		DirectLink: link,
		Kind:       ref.Kind.String(),
		FileName:   ref.FileName,
		MimeType:   ref.MimeType,
		FileSize:   size,
	})
	return Result{Status: http.StatusOK, Ack: Ack{OK: true, FileLink: link}}
}

type target struct {
	chatID    int64
	messageID int
}

func (p *Processor) reply(ctx context.Context, log *slog.Logger, to target, outcome reply.Outcome) {
	err := p.bot.SendMessage(ctx, to.chatID, reply.Compose(outcome), telegram.SendOptions{
		ReplyToMessageID:   to.messageID,
		DisableLinkPreview: true,
	})
	if err != nil {
		log.Warn("send reply failed", slog.String("outcome", fmt.Sprintf("%T", outcome)), slog.Any("error", err))
	}
}

func logResolutionError(log *slog.Logger, err error) {
	var rerr *telegram.ResolutionError
	if errors.As(err, &rerr) {
		log.Warn("getFile failed",
			slog.Int("http_status", rerr.HTTPStatus),
			slog.Int("error_code", rerr.ErrorCode),
			slog.String("platform_message", rerr.PlatformMessage),
			slog.Bool("empty_path", errors.Is(err, telegram.ErrEmptyFilePath)),
		)
		return
	}
	log.Warn("getFile failed", slog.Any("error", err))
}
