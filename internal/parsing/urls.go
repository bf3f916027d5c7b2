// Package parsing validates and normalizes user-entered URLs.
package parsing

import (
	"fmt"
	"net/url"
	"strings"
)

// URLType classifies a recognized YouTube URL.
type URLType string

const (
	URLVideo    URLType = "video"
	URLPlaylist URLType = "playlist"
	URLUnknown  URLType = "unknown"
)

// URLInfo is the result of validating one URL.
type URLInfo struct {
	URL  string
	Type URLType
	ID   string
}

// ValidateURL checks a user-entered string is a usable YouTube video or
// playlist URL and extracts its identifier.
func ValidateURL(raw string) (*URLInfo, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid URL scheme %q (must be http or https)", u.Scheme)
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host != "youtube.com" && host != "youtu.be" && host != "m.youtube.com" {
		return nil, fmt.Errorf("not a YouTube URL: %q", raw)
	}

	q := u.Query()

	// A watch URL carrying a list parameter counts as a playlist.
	if list := q.Get("list"); list != "" {
		return &URLInfo{URL: raw, Type: URLPlaylist, ID: list}, nil
	}

	if host == "youtu.be" {
		if id := strings.Trim(u.Path, "/"); id != "" {
			return &URLInfo{URL: raw, Type: URLVideo, ID: id}, nil
		}
		return nil, fmt.Errorf("could not extract video ID from %q", raw)
	}

	switch {
	case u.Path == "/watch":
		if id := q.Get("v"); id != "" {
			return &URLInfo{URL: raw, Type: URLVideo, ID: id}, nil
		}
		return nil, fmt.Errorf("could not extract video ID from %q", raw)

	case strings.HasPrefix(u.Path, "/embed/"):
		if id := strings.TrimPrefix(u.Path, "/embed/"); id != "" {
			return &URLInfo{URL: raw, Type: URLVideo, ID: id}, nil
		}
		return nil, fmt.Errorf("could not extract video ID from %q", raw)

	case u.Path == "/playlist":
		return nil, fmt.Errorf("could not extract playlist ID from %q", raw)
	}

	return nil, fmt.Errorf("URL does not match any known YouTube URL pattern: %q", raw)
}

// NormalizeURL rewrites short and embed forms to the canonical watch URL.
func NormalizeURL(raw string) string {
	info, err := ValidateURL(raw)
	if err != nil || info.Type != URLVideo {
		return raw
	}
	return WatchURL(info.ID)
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
