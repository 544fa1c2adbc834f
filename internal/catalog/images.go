package catalog

import (
	"strings"
)

// Image size classifications served by the image host.
const (
	SizeW92      = "w92"
	SizeW154     = "w154"
	SizeW185     = "w185"
	SizeW342     = "w342"
	SizeW500     = "w500"
	SizeW780     = "w780"
	SizeOriginal = "original"

	DefaultPosterSize   = SizeW185
	DefaultBackdropSize = SizeW780
)

var imageSizes = map[string]bool{
	SizeW92: true, SizeW154: true, SizeW185: true, SizeW342: true,
	SizeW500: true, SizeW780: true, SizeOriginal: true,
}

// Images builds image-host URLs from stored path fragments.
type Images struct {
	BaseURL string
}

// URL returns "" for an empty path. Unknown sizes fall back to w185.
func (i Images) URL(size, path string) string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return ""
	}
	if !imageSizes[size] {
		size = DefaultPosterSize
	}
	return strings.TrimSuffix(i.BaseURL, "/") + "/" + size + "/" + path
}

func YouTubeURL(key string) string {
	return "https://www.youtube.com/watch?v=" + key
}

func YouTubeThumbnailURL(key string) string {
	return "https://img.youtube.com/vi/" + key + "/0.jpg"
}
