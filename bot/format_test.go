package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "03:21", formatSeconds(201))
	assert.Equal(t, "00:59", formatSeconds(59))
	assert.Equal(t, "01:02:03", formatSeconds(3723))
	assert.Equal(t, "12d 4h 33m", formatSeconds(12*86400+4*3600+33*60))
}

func TestFormatDiffInt(t *testing.T) {
	assert.Equal(t, "+5", formatDiffInt(5))
	assert.Equal(t, "-5", formatDiffInt(-5))
	assert.Equal(t, "0", formatDiffInt(0))
}

func TestFormatDiffFloat(t *testing.T) {
	assert.Equal(t, "+15.3", formatDiffFloat(15.3, 2))
	assert.Equal(t, "-0.25", formatDiffFloat(-0.25, 2))
	assert.Equal(t, "0", formatDiffFloat(0, 2))
}

func TestFormatTitle(t *testing.T) {
	// 23 characters shared between title and difficulty name.
	assert.Equal(t, "xi - Blue Zenith ...[NORMAL]",
		formatTitle("xi - Blue Zenith and then some", "NORMAL"))
	assert.Equal(t, "Short[Easy]", formatTitle("Short", "Easy"))
	// A long difficulty name leaves no room for the title at all.
	assert.Equal(t, "...[AN EXTREMELY LONG DIFFICULTY]",
		formatTitle("Song", "AN EXTREMELY LONG DIFFICULTY"))
}

func TestFlagEmoji(t *testing.T) {
	assert.Equal(t, "\U0001F1E6\U0001F1FA", flagEmoji("AU"))
	assert.Equal(t, "\U0001F1E9\U0001F1EA", flagEmoji("de"))
	assert.Equal(t, "", flagEmoji(""))
	assert.Equal(t, "", flagEmoji("AUS"))
	assert.Equal(t, "", flagEmoji("A1"))
}
