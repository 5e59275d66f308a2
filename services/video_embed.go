package services

import (
	"net/url"
	"strings"
)

// VideoEmbed describes how a video banner URL should be played
type VideoEmbed struct {
	Platform string // youtube, vimeo or file
	EmbedURL string
}

// IsIframe reports whether the video is played in a provider iframe
func (v VideoEmbed) IsIframe() bool {
	return v.Platform == "youtube" || v.Platform == "vimeo"
}

// ParseVideoBanner maps a banner URL to an iframe player for YouTube and
// Vimeo links. Anything else is treated as a direct video file.
func ParseVideoBanner(raw string) VideoEmbed {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return VideoEmbed{Platform: "file", EmbedURL: raw}
	}

	host := strings.ToLower(u.Hostname())
	path := strings.Trim(u.Path, "/")

	switch {
	case host == "youtu.be":
		if id := firstSegment(path); id != "" {
			return VideoEmbed{Platform: "youtube", EmbedURL: youtubeEmbedURL(id)}
		}
	case isHostOrSubdomain(host, "youtube.com"):
		var id string
		switch {
		case path == "watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(path, "embed/"):
			id = firstSegment(strings.TrimPrefix(path, "embed/"))
		case strings.HasPrefix(path, "shorts/"):
			id = firstSegment(strings.TrimPrefix(path, "shorts/"))
		case strings.HasPrefix(path, "live/"):
			id = firstSegment(strings.TrimPrefix(path, "live/"))
		}
		if id != "" {
			return VideoEmbed{Platform: "youtube", EmbedURL: youtubeEmbedURL(id)}
		}
	case isHostOrSubdomain(host, "vimeo.com"):
		if id := lastSegment(path); onlyDigits(id) {
			return VideoEmbed{Platform: "vimeo", EmbedURL: "https://player.vimeo.com/video/" + id}
		}
	}

	return VideoEmbed{Platform: "file", EmbedURL: raw}
}

func youtubeEmbedURL(id string) string {
	v := url.Values{}
	v.Set("rel", "0")
	v.Set("modestbranding", "1")
	v.Set("playsinline", "1")
	return "https://www.youtube.com/embed/" + url.PathEscape(id) + "?" + v.Encode()
}

func firstSegment(path string) string {
	if i := strings.Index(path, "/"); i >= 0 {
		return path[:i]
	}
	return path
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func onlyDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}

func isHostOrSubdomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
