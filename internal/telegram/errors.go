package telegram

import (
	"errors"
	"time"

	"github.com/go-telegram/bot"

	"github.com/mixelka/chatadapter/pkg/chaterr"
)

const platform = "telegram"

// mapError converts Bot API errors into *chaterr.Error. Errors that are
// already classified, or that the library does not classify, pass through
// as transport errors keeping the original as cause.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := chaterr.As(err); ok {
		return err
	}

	var tooMany *bot.TooManyRequestsError
	switch {
	case errors.As(err, &tooMany):
		return chaterr.RateLimit(platform, time.Duration(tooMany.RetryAfter)*time.Second, err)
	case errors.Is(err, bot.ErrorUnauthorized):
		return chaterr.Authentication(platform, err)
	case errors.Is(err, bot.ErrorForbidden):
		return chaterr.Permission(platform, err)
	case errors.Is(err, bot.ErrorNotFound):
		return chaterr.NotFound(platform, "chat or message", err)
	case errors.Is(err, bot.ErrorBadRequest):
		e := chaterr.Validation(platform, "request rejected")
		e.Err = err
		return e
	default:
		return chaterr.Transport(platform, "", "", err)
	}
}
