package mylog

import (
	"brandichat/app/config"
	"context"
	"log/slog"
	"os"

	"github.com/phsym/console-slog"
	slogmulti "github.com/samber/slog-multi"
	slogtelegram "github.com/samber/slog-telegram/v2"
)

// Preinit installs a console-only logger so config loading failures are
// readable before Init runs.
func Preinit() {
	slog.SetDefault(slog.New(consoleHandler()))
}

// Init routes records to the console and, when configured, forwards errors
// and records tagged "telegram" to a Telegram chat.
func Init(cfg *config.Config) error {
	router := slogmulti.Router().Add(consoleHandler())

	if cfg.Log.Telegram.Token != "" {
		router = router.Add(
			slogtelegram.Option{
				Level:     slog.LevelDebug,
				Token:     cfg.Log.Telegram.Token,
				Username:  cfg.Log.Telegram.ChatID,
				AddSource: true,
			}.NewTelegramHandler(),
			telegramFilter,
		)
	}

	slog.SetDefault(slog.New(router.Handler()))

	return nil
}

func consoleHandler() slog.Handler {
	return console.NewHandler(os.Stderr, &console.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})
}

func telegramFilter(_ context.Context, r slog.Record) bool {
	if r.Level == slog.LevelError {
		return true
	}

	tagged := false

	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key == "telegram" {
			tagged = true
			return false
		}

		return true
	})

	return tagged
}
