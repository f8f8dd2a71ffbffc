package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasOriginalityFeatures(t *testing.T) {
	long := strings.Repeat("a", 100)
	short := strings.Repeat("a", 99)

	tests := []struct {
		name       string
		text       string
		link       bool
		threadRoot bool
		media      bool
		want       bool
	}{
		{"link", "gm", true, false, false, true},
		{"thread root", "gm", false, true, false, true},
		{"media", "gm", false, false, true, true},
		{"long text", long, false, false, false, true},
		{"short text", short, false, false, false, false},
		{"mentions do not count", "@fluffyshare @someone " + short, false, false, false, false},
		{"urls do not count", short + " https://example.com/a/very/long/path/that/adds/characters", false, false, false, false},
		{"inner whitespace counts", "@fluffyshare " + strings.Repeat("a", 50) + "\n\n" + strings.Repeat("a", 48), false, false, false, true},
		{"multibyte counted by rune", strings.Repeat("é", 100), false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasOriginalityFeatures(tt.text, tt.link, tt.threadRoot, tt.media))
		})
	}
}

func TestStripMentionsAndURLs(t *testing.T) {
	got := StripMentionsAndURLs("  @fluffyshare  love   this http://t.co/abc  @bob ")
	assert.Equal(t, "love   this", got)
}
