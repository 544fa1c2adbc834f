package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImages_URL(t *testing.T) {
	images := Images{BaseURL: "https://image.example.org/t/p/"}

	assert.Equal(t, "https://image.example.org/t/p/w185/abc.jpg", images.URL(SizeW185, "abc.jpg"))
	assert.Equal(t, "https://image.example.org/t/p/original/abc.jpg", images.URL(SizeOriginal, "/abc.jpg"))
	assert.Equal(t, "https://image.example.org/t/p/w185/abc.jpg", images.URL("w9999", "abc.jpg"))
	assert.Equal(t, "", images.URL(SizeW92, ""))
}

func TestYouTubeURLs(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=SUXWAEX2jlg", YouTubeURL("SUXWAEX2jlg"))
	assert.Equal(t, "https://img.youtube.com/vi/SUXWAEX2jlg/0.jpg", YouTubeThumbnailURL("SUXWAEX2jlg"))
}

func TestRedact(t *testing.T) {
	got := redact("https://api.example.org/3/movie/1?api_key=secret&language=en-US")
	assert.NotContains(t, got, "secret")
	assert.Contains(t, got, "api_key=REDACTED")
	assert.Contains(t, got, "language=en-US")

	got = redact("http://exa mple.org/3/movie/1?api_key=secret")
	assert.Equal(t, unparseableURL, got)
}
