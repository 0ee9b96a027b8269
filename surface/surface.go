// Package surface acquires a rendering context, walking an ordered list of
// context modes from the preferred one to the most permissive fallback.
package surface

import (
	"errors"
	"fmt"
	"log/slog"
)

var ErrUnsupported = errors.New("no rendering context available")

// Mode names one kind of context a platform can be asked for, such as
// "webgl" or "opengl-4.1-core".
type Mode string

// UnsupportedMessage is what the user sees when every mode is refused.
const UnsupportedMessage = "Your system does not support the required graphics API"

// Acquire calls request for each mode in order and returns the first context granted
// together with the mode that produced it. Each mode is requested at most
// once. When every mode is refused, notify receives a user-facing message and
// the returned error wraps ErrUnsupported and every refusal.
func Acquire[C any](request func(Mode) (C, error), modes []Mode, logger *slog.Logger, notify func(msg string)) (C, Mode, error) {
	var zero C
	errs := []error{ErrUnsupported}
	for i, mode := range modes {
		ctx, err := request(mode)
		if err == nil {
			if i > 0 {
				logger.Info("using fallback context", "mode", mode)
			}
			return ctx, mode, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", mode, err))
		if i+1 < len(modes) {
			logger.Info("context mode not supported, falling back", "mode", mode, "fallback", modes[i+1], "err", err)
		}
	}
	logger.Error("no rendering context available", "modes", modes)
	if notify != nil {
		notify(UnsupportedMessage)
	}
	return zero, "", errors.Join(errs...)
}
