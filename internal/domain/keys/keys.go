// Package keys holds the viper/flag key names recognized by playlistfy.
package keys

// Resolved configuration keys. Environment variables map 1:1 under the
// PLAYLISTFY_ prefix (e.g. PLAYLISTFY_OUTPUT_DIR).
const (
	OutputDir       = "output_dir"
	Quality         = "quality"
	ParallelWorkers = "parallel_workers"
	MaxRetries      = "max_retries"
	Theme           = "theme"
	CookieSource    = "cookie_source"
	PreferFormat    = "prefer_format"
	RateLimit       = "rate_limit"
	ArchiveDB       = "archive_db"
	BackoffCeiling  = "backoff_ceiling"
	UseParallel     = "use_parallel"
	DebugLevel      = "debug"
)

// "Don't ask again" toggles for the interactive menu.
const (
	AskQuality      = "ask_quality"
	AskDownloadDir  = "ask_download_dir"
	AskParallelMode = "ask_parallel_mode"
	AskNumWorkers   = "ask_num_workers"
)
