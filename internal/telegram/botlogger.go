package telegram

import (
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// slogBotLogger routes the Bot API library's internal logging through slog.
type slogBotLogger struct {
	log *slog.Logger
}

func (l *slogBotLogger) Println(v ...interface{}) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintln(v...)))
}

func (l *slogBotLogger) Printf(format string, v ...interface{}) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// InstallBotLogger makes the Bot API library log through log.
func InstallBotLogger(log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	_ = tgbotapi.SetLogger(&slogBotLogger{log: log.With(slog.String("component", "tgbotapi"))})
}
