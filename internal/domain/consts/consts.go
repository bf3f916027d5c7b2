// Package consts holds various global, unchanging values.
package consts

import "time"

// Program identity and fixed paths (relative to the user home directory).
const (
	ProgramName   = "playlistfy"
	ConfigDirName = ".playlistfy"
	ConfigFile    = "config.json"
	ProjectFile   = "playlistfy.json"
	DBFile        = "playlistfy.db"
	LogFile       = "playlistfy.log"
)

// External binaries. All remote fetching and muxing is delegated to these.
const (
	YtDlpBin  = "yt-dlp"
	FFmpegBin = "ffmpeg"
)

// Quality tiers accepted by the config layer.
var QualityTiers = [...]string{"best", "1080p", "720p", "480p", "worst"}

// CookieBrowsers are the browser names yt-dlp accepts for --cookies-from-browser.
var CookieBrowsers = [...]string{"brave", "chrome", "chromium", "edge", "firefox", "opera", "safari", "vivaldi", "whale"}

// AllVidExtensions is a list of video file extensions.
var AllVidExtensions = [...]string{".3gp", ".avi", ".f4v", ".flv", ".m4v", ".mkv",
	".mov", ".mp4", ".mpeg", ".mpg", ".ogm", ".ogv",
	".ts", ".vob", ".webm", ".wmv"}

// Worker pool bounds.
const (
	MinWorkers = 1
	MaxWorkers = 10
)

// Timing constants.
const (
	Interval100ms   = 100 * time.Millisecond
	ProbeTimeout    = 10 * time.Second
	FileWaitTimeout = 5 * time.Second
	RevealDelay     = 40 * time.Millisecond
)

// Database table and column names.
const (
	DBDownloads = "downloads"

	QVidID      = "id"
	QVidURL     = "url"
	QVidExtID   = "video_id"
	QVidTitle   = "title"
	QVidPath    = "path"
	QDLStatus   = "status"
	QDLPct      = "pct"
	QUploadedAt = "uploaded_at"
	QCreatedAt  = "created_at"
	QUpdatedAt  = "updated_at"
)
