package flashscore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const (
	viewportWidth  = 1920
	viewportHeight = 1080
)

type rodSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
}

func launchRod(ctx context.Context, cfg ClientConfig) (session, error) {
	l := launcher.New().Headless(cfg.Headless).Context(ctx)
	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  viewportWidth,
		Height: viewportHeight,
	}); err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	return &rodSession{launcher: l, browser: browser, page: page}, nil
}

func (s *rodSession) Navigate(url string) error {
	if err := s.page.Navigate(url); err != nil {
		return err
	}
	return s.page.WaitLoad()
}

func (s *rodSession) Click(selector string, timeout time.Duration) error {
	el, err := s.page.Timeout(timeout).Element(selector)
	if err != nil {
		return notFound(err)
	}
	return clickElement(el, timeout)
}

func (s *rodSession) ClickText(text string, timeout time.Duration) error {
	el, err := s.page.Timeout(timeout).ElementX(textXPath(text))
	if err != nil {
		return notFound(err)
	}
	return clickElement(el, timeout)
}

func (s *rodSession) Type(selector, text string, timeout time.Duration) error {
	el, err := s.page.Timeout(timeout).Element(selector)
	if err != nil {
		return notFound(err)
	}
	el = el.Timeout(timeout)
	if err := el.WaitVisible(); err != nil {
		return err
	}
	return el.Input(text)
}

// Texts waits for the first match, then returns the rendered text of every match.
// No match within timeout yields an empty slice.
func (s *rodSession) Texts(selector string, timeout time.Duration) ([]string, error) {
	if _, err := s.page.Timeout(timeout).Element(selector); err != nil {
		if errors.Is(notFound(err), errElementNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	elements, err := s.page.Elements(selector)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}

func (s *rodSession) Count(selector string) (int, error) {
	elements, err := s.page.Elements(selector)
	if err != nil {
		return 0, err
	}
	return len(elements), nil
}

func (s *rodSession) Close() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

func clickElement(el *rod.Element, timeout time.Duration) error {
	el = el.Timeout(timeout)
	if err := el.ScrollIntoView(); err != nil {
		return err
	}
	if err := el.WaitVisible(); err != nil {
		return err
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

// notFound maps an expired element wait onto errElementNotFound.
func notFound(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", errElementNotFound, err)
	}
	return err
}

func textXPath(text string) string {
	if !strings.Contains(text, "'") {
		return "//*[text()='" + text + "']"
	}
	return `//*[text()="` + text + `"]`
}
