package cfg

import (
	"fmt"
	"slices"

	"playlistfy/internal/domain/consts"
	"playlistfy/internal/domain/keys"
	"playlistfy/internal/logging"

	"github.com/spf13/viper"
	str2duration "github.com/xhit/go-str2duration/v2"
)

// validate checks the resolved configuration, clamping recoverable values
// and rejecting ones that cannot be worked around.
func validate(v *viper.Viper) error {
	clampWorkers(v)
	clampRetries(v)

	if q := v.GetString(keys.Quality); !slices.Contains(consts.QualityTiers[:], q) {
		logging.W("Unknown quality tier %q, using %q", q, "best")
		v.Set(keys.Quality, "best")
	}

	switch theme := v.GetString(keys.Theme); theme {
	case "dark", "light", "plain":
	default:
		logging.W("Unknown theme %q, using %q", theme, "dark")
		v.Set(keys.Theme, "dark")
	}

	if err := verifyCookieSource(v); err != nil {
		return err
	}

	if ceiling := v.GetString(keys.BackoffCeiling); ceiling != "" {
		if _, err := str2duration.ParseDuration(ceiling); err != nil {
			return fmt.Errorf("invalid backoff ceiling %q: %w", ceiling, err)
		}
	}

	if dbg := v.GetInt(keys.DebugLevel); dbg < 0 || dbg > 5 {
		logging.W("Debug level %d out of range (0-5), using 0", dbg)
		v.Set(keys.DebugLevel, 0)
	}

	return nil
}

// clampWorkers bounds the worker count. A zero value also covers
// environment variables that failed integer coercion upstream.
func clampWorkers(v *viper.Viper) {
	w := v.GetInt(keys.ParallelWorkers)
	switch {
	case w < consts.MinWorkers:
		logging.W("Worker count %d below minimum, using %d", w, consts.MinWorkers)
		v.Set(keys.ParallelWorkers, consts.MinWorkers)
	case w > consts.MaxWorkers:
		logging.W("Worker count %d above maximum, using %d", w, consts.MaxWorkers)
		v.Set(keys.ParallelWorkers, consts.MaxWorkers)
	}
}

func clampRetries(v *viper.Viper) {
	if r := v.GetInt(keys.MaxRetries); r < 1 {
		logging.W("Retry count %d invalid, using 1", r)
		v.Set(keys.MaxRetries, 1)
	}
}

// verifyCookieSource verifies the cookie source is valid for yt-dlp.
func verifyCookieSource(v *viper.Viper) error {
	source := v.GetString(keys.CookieSource)
	if source == "" {
		return nil
	}

	if !slices.Contains(consts.CookieBrowsers[:], source) {
		return fmt.Errorf("invalid cookie source %q. yt-dlp supports: %v", source, consts.CookieBrowsers)
	}

	logging.I("Using %s for cookies", source)
	return nil
}
