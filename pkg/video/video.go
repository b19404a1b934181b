// Package video turns user supplied video references into embeddable player URLs.
package video

import (
	"regexp"
	"strings"
)

// Provider identifies which player an embed URL targets
type Provider string

const (
	ProviderYouTube Provider = "youtube"
	ProviderVimeo   Provider = "vimeo"
	ProviderDirect  Provider = "direct"
)

// Embed is a normalized player URL
type Embed struct {
	Provider Provider `json:"provider"`
	URL      string   `json:"url"`
	ID       string   `json:"id,omitempty"`
}

var (
	youtubePattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	vimeoPattern   = regexp.MustCompile(`vimeo\.com/(\d+)`)
	numericPattern = regexp.MustCompile(`^\d+$`)
)

// YouTubeEmbedURL returns the player URL for a YouTube video id
func YouTubeEmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

// VimeoEmbedURL returns the player URL for a Vimeo video id
func VimeoEmbedURL(id string) string {
	return "https://player.vimeo.com/video/" + id + "?badge=0&autopause=0"
}

// Normalize resolves raw into an embed. The second return is false when raw
// is empty or unrecognised, in which case the caller shows a placeholder.
//
// Recognised inputs, in order: YouTube watch/embed/short links, Vimeo links,
// a bare numeric id (treated as Vimeo), and any other http(s) URL which
// passes through unchanged.
func Normalize(raw string) (Embed, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Embed{}, false
	}

	if m := youtubePattern.FindStringSubmatch(raw); m != nil {
		return Embed{Provider: ProviderYouTube, ID: m[1], URL: YouTubeEmbedURL(m[1])}, true
	}
	if m := vimeoPattern.FindStringSubmatch(raw); m != nil {
		return Embed{Provider: ProviderVimeo, ID: m[1], URL: VimeoEmbedURL(m[1])}, true
	}
	if numericPattern.MatchString(raw) {
		return Embed{Provider: ProviderVimeo, ID: raw, URL: VimeoEmbedURL(raw)}, true
	}
	if strings.HasPrefix(raw, "http") {
		return Embed{Provider: ProviderDirect, URL: raw}, true
	}
	return Embed{}, false
}
