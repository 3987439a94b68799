package flashscore

import (
	"context"
	"errors"
	"time"
)

// errElementNotFound reports that a wait expired before the element appeared.
var errElementNotFound = errors.New("element not found")

// session is the slice of browser automation a scrape needs. Every wait is bounded by the
// given timeout and by the session context.
type session interface {
	Navigate(url string) error
	Click(selector string, timeout time.Duration) error
	ClickText(text string, timeout time.Duration) error
	Type(selector, text string, timeout time.Duration) error
	Texts(selector string, timeout time.Duration) ([]string, error)
	// Count reports how many elements match selector right now, without waiting.
	Count(selector string) (int, error)
	Close() error
}

type launchFunc func(ctx context.Context, cfg ClientConfig) (session, error)
