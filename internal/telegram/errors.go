package telegram

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrEmptyFilePath is wrapped by ResolutionError when the platform answered
// successfully but did not include a file path.
var ErrEmptyFilePath = errors.New("getFile returned no file_path")

// ResolutionError reports a getFile call the platform refused or answered
// without a usable path.
type ResolutionError struct {
	HTTPStatus      int
	ErrorCode       int
	PlatformMessage string
	Err             error
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("resolve file")
	if e.HTTPStatus != 0 {
		fmt.Fprintf(&b, ": status %d", e.HTTPStatus)
	}
	if e.ErrorCode != 0 && e.ErrorCode != e.HTTPStatus {
		fmt.Fprintf(&b, " (error_code %d)", e.ErrorCode)
	}
	if msg := strings.TrimSpace(e.PlatformMessage); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// APIError is returned by SendMessage when the platform rejects a message.
type APIError struct {
	Method      string
	HTTPStatus  int
	ErrorCode   int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s failed: status %d: %s", e.Method, e.HTTPStatus, strings.TrimSpace(e.Description))
}

// stripURL drops the request URL from transport errors. Bot API URLs embed
// the token, which must never reach logs.
func stripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s request: %w", uerr.Op, uerr.Err)
	}
	return err
}
