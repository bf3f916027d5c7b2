package models

import "time"

// Settings is the effective configuration for one run, resolved once at
// startup and passed explicitly. It is never mutated mid-run; the settings
// menu writes a new snapshot back to disk and rebuilds it.
type Settings struct {
	OutputDir       string `json:"output_dir"`
	Quality         string `json:"quality"`
	ParallelWorkers int    `json:"parallel_workers"`
	MaxRetries      int    `json:"max_retries"`
	Theme           string `json:"theme"`
	CookieSource    string `json:"cookie_source"`
	PreferFormat    string `json:"prefer_format"`
	RateLimit       string `json:"rate_limit"`
	ArchiveDB       string `json:"archive_db"`
	UseParallel     bool   `json:"use_parallel"`

	AskQuality      bool `json:"ask_quality"`
	AskDownloadDir  bool `json:"ask_download_dir"`
	AskParallelMode bool `json:"ask_parallel_mode"`
	AskNumWorkers   bool `json:"ask_num_workers"`

	BackoffCeiling time.Duration `json:"-"`
	Debug          int           `json:"-"`
}
