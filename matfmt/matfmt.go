// Package matfmt prints flat matrices for debugging.
package matfmt

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
)

// Sprint lays m out size values per line, each line starting with a newline
// and a space and values separated by ", ". A size of zero or less means 4.
// Each value is widened to float64 and printed in its shortest float64 form,
// the way a browser prints Float32Array elements.
func Sprint(m []float32, size int) string {
	if size <= 0 {
		size = 4
	}
	var b strings.Builder
	for i, v := range m {
		if i%size == 0 {
			b.WriteString("\n ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 64))
	}
	return b.String()
}

// Log writes a 4x4 matrix to logger at debug level. The formatting is skipped
// when debug logging is off.
func Log(logger *slog.Logger, name string, m []float32) {
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	logger.Debug("matrix "+name+Sprint(m, 4))
}
