package cfg

import (
	"playlistfy/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// setFlags sets the CLI flag surface and binds each flag to its config key.
// Flags take precedence over every other configuration layer.
func setFlags(v *viper.Viper, cmd *cobra.Command) {
	cmd.Flags().StringP("output-dir", "o", "", "Directory to save downloads into")
	cmd.Flags().StringP("quality", "q", "", "Quality tier (best, 1080p, 720p, 480p, worst)")
	cmd.Flags().IntP("workers", "w", 0, "Number of parallel download workers for playlists")
	cmd.Flags().IntP("retries", "r", 0, "Maximum download retry attempts")
	cmd.Flags().String("theme", "", "Terminal theme (dark, light, plain)")
	cmd.Flags().String("cookie-source", "", "Browser to source cookies from (e.g. firefox)")
	cmd.Flags().String("prefer-format", "", "Preferred merge container (e.g. mp4)")
	cmd.Flags().String("rate-limit", "", "yt-dlp download rate limit (e.g. 2M)")
	cmd.Flags().Bool("parallel", false, "Download playlist entries in parallel")
	cmd.Flags().String("backoff-ceiling", "", "Upper bound on retry backoff delay (e.g. 120s, 2m)")
	cmd.Flags().Int("debug", 0, "Debug level (0-5)")

	bindings := map[string]string{
		keys.OutputDir:       "output-dir",
		keys.Quality:         "quality",
		keys.ParallelWorkers: "workers",
		keys.MaxRetries:      "retries",
		keys.Theme:           "theme",
		keys.CookieSource:    "cookie-source",
		keys.PreferFormat:    "prefer-format",
		keys.RateLimit:       "rate-limit",
		keys.UseParallel:     "parallel",
		keys.BackoffCeiling:  "backoff-ceiling",
		keys.DebugLevel:      "debug",
	}

	for key, flag := range bindings {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			panic("failed to bind flag " + flag + ": " + err.Error())
		}
	}
}
