package utils

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
)

var Log = logrus.New()

func SetLogLevel(level string) {
	// We are not using logrus' trace and panic levels
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(log.DebugLevel)
	case "info":
		Log.SetLevel(log.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(log.WarnLevel)
	case "error":
		Log.SetLevel(log.ErrorLevel)
	case "fatal":
		Log.SetLevel(log.FatalLevel)
	default:
		log.Fatal("Bad error level string")
	}
}

// Round1 rounds to one decimal place. Score formulas round each sub-score
// before averaging, so this lives here rather than inline at call sites.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Percent returns the rounded percentage of part over total, 0 when total is 0.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// StripWWW removes a single leading "www." label.
func StripWWW(domain string) string {
	return strings.TrimPrefix(domain, "www.")
}
