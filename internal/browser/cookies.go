// Package browser inspects local browser cookie stores before a cookie
// source is handed to yt-dlp.
package browser

import (
	"strings"

	"playlistfy/internal/logging"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all"
)

const cookieDomain = "youtube.com"

// CheckCookieSource verifies the named browser actually holds YouTube
// cookies on this machine. A negative result is advisory: yt-dlp still
// receives the configured source, since it reads the stores itself.
func CheckCookieSource(browser string) bool {
	browser = strings.ToLower(browser)

	found := false
	for _, store := range kooky.FindAllCookieStores() {
		if !strings.EqualFold(store.Browser(), browser) {
			continue
		}
		found = true

		cookies, err := store.ReadCookies(kooky.Valid, kooky.DomainContains(cookieDomain))
		if err != nil {
			logging.D(2, "Failed to read cookies from %s store at %q: %v", store.Browser(), store.FilePath(), err)
			continue
		}
		if len(cookies) > 0 {
			logging.D(1, "Found %d YouTube cookies in %s", len(cookies), store.Browser())
			return true
		}
	}

	if !found {
		logging.W("No cookie store found for browser %q on this machine", browser)
	} else {
		logging.W("Browser %q has no YouTube cookies; log into YouTube there first", browser)
	}
	return false
}
