// Package telegram talks to the Telegram Bot API: it extracts file
// references from updates, resolves them to direct download links and sends
// replies.
package telegram

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	defaultAPIBase     = "https://api.telegram.org"
	defaultHTTPTimeout = 15 * time.Second
)

// newBotAPI builds a BotAPI against apiBase without calling getMe, so
// construction never touches the network.
func newBotAPI(token, apiBase string, hc *http.Client) *tgbotapi.BotAPI {
	if hc == nil {
		hc = &http.Client{Timeout: defaultHTTPTimeout}
	}
	bot := &tgbotapi.BotAPI{
		Token:  strings.TrimSpace(token),
		Client: hc,
		Buffer: 100,
	}
	bot.SetAPIEndpoint(normalizeAPIBase(apiBase) + "/bot%s/%s")
	return bot
}

func normalizeAPIBase(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return defaultAPIBase
	}
	return base
}

// Client covers the getFile and sendMessage calls the webhook needs.
type Client struct {
	token      string
	apiBase    string
	httpClient *http.Client
	bot        *tgbotapi.BotAPI
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIBase overrides the platform base URL. Used for tests and self-hosted
// Bot API servers.
func WithAPIBase(base string) ClientOption {
	return func(c *Client) {
		if base = strings.TrimSpace(base); base != "" {
			c.apiBase = normalizeAPIBase(base)
		}
	}
}

// WithHTTPClient sets the HTTP client used for outbound calls.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// NewClient creates a Client for the given bot token.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:      strings.TrimSpace(token),
		apiBase:    defaultAPIBase,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.bot = newBotAPI(c.token, c.apiBase, c.httpClient)
	c.logger = c.logger.With(slog.String("component", "telegram_client"))
	return c
}

// ResolvedPath is the platform-relative path returned by getFile.
type ResolvedPath struct {
	FilePath string
	// FileSize is zero when the platform did not report it.
	FileSize int64
}

// DirectLink builds the download URL for a resolved path. The result embeds
// the bot token.
func (c *Client) DirectLink(filePath string) string {
	return c.apiBase + "/file/bot" + c.token + "/" + filePath
}

// ResolveFile calls getFile for fileID. Platform refusals and success
// envelopes without a path are reported as *ResolutionError. Deadlines come
// from the HTTP client; ctx is only checked before the call.
func (c *Client) ResolveFile(ctx context.Context, fileID string) (ResolvedPath, error) {
	if err := ctx.Err(); err != nil {
		return ResolvedPath{}, err
	}
	file, err := c.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		if apiErr, ok := asBotError(err); ok {
			return ResolvedPath{}, &ResolutionError{
				HTTPStatus:      apiErr.Code,
				ErrorCode:       apiErr.Code,
				PlatformMessage: apiErr.Message,
			}
		}
		c.logger.Debug("getFile request failed", slog.Any("error", stripURL(err)))
		return ResolvedPath{}, &ResolutionError{Err: stripURL(err)}
	}
	if strings.TrimSpace(file.FilePath) == "" {
		return ResolvedPath{}, &ResolutionError{HTTPStatus: http.StatusOK, Err: ErrEmptyFilePath}
	}
	return ResolvedPath{FilePath: file.FilePath, FileSize: int64(file.FileSize)}, nil
}

// SendOptions tunes an outgoing message.
type SendOptions struct {
	// ReplyToMessageID threads the reply under the original message when non-zero.
	ReplyToMessageID int
	// DisableLinkPreview suppresses the platform preview card for URLs.
	DisableLinkPreview bool
}

// SendMessage posts a plain-text message to chatID.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, opts SendOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = opts.DisableLinkPreview
	msg.ReplyToMessageID = opts.ReplyToMessageID
	// A deleted original must not make the reply fail.
	msg.AllowSendingWithoutReply = opts.ReplyToMessageID != 0

	if _, err := c.bot.Send(msg); err != nil {
		if apiErr, ok := asBotError(err); ok {
			return &APIError{
				Method:      "sendMessage",
				HTTPStatus:  apiErr.Code,
				ErrorCode:   apiErr.Code,
				Description: apiErr.Message,
			}
		}
		return stripURL(err)
	}
	return nil
}

// asBotError unwraps a platform refusal. The library returns *Error from
// requests, but the value form also satisfies error.
func asBotError(err error) (tgbotapi.Error, bool) {
	var ptr *tgbotapi.Error
	if errors.As(err, &ptr) && ptr != nil {
		return *ptr, true
	}
	var val tgbotapi.Error
	if errors.As(err, &val) {
		return val, true
	}
	return tgbotapi.Error{}, false
}
