package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// formatSeconds renders a duration in seconds either as play time
// ("12d 4h 33m") or as a map length ("03:21" / "01:02:03").
func formatSeconds(seconds int) string {
	if seconds >= 86400 {
		days := seconds / 86400
		seconds %= 86400
		hours := seconds / 3600
		seconds %= 3600
		minutes := seconds / 60
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// formatDiffInt renders a delta with an explicit plus sign for gains.
func formatDiffInt(d int) string {
	if d > 0 {
		return "+" + strconv.Itoa(d)
	}
	return strconv.Itoa(d)
}

// formatDiffFloat renders a float delta with an explicit plus sign for gains.
func formatDiffFloat(d float64, precision int) string {
	s := strconv.FormatFloat(d, 'f', -1, 64)
	if rounded := fmt.Sprintf("%.*f", precision, d); len(rounded) < len(s) {
		s = strings.TrimRight(strings.TrimRight(rounded, "0"), ".")
		if s == "" || s == "-" {
			s = "0"
		}
	}
	if d > 0 {
		return "+" + s
	}
	return s
}

// formatTitle joins a beatmap title and difficulty name, truncating long
// titles so inline score lines stay readable.
func formatTitle(title, diff string) string {
	if len(title)+len(diff) > 25 {
		cut := 23 - len(diff)
		if cut < 0 {
			cut = 0
		}
		if cut > len(title) {
			cut = len(title)
		}
		return fmt.Sprintf("%s...[%s]", title[:cut], diff)
	}
	return fmt.Sprintf("%s[%s]", title, diff)
}

// flagEmoji converts an ISO country code to its regional indicator emoji.
func flagEmoji(country string) string {
	country = strings.ToUpper(country)
	if len(country) != 2 {
		return ""
	}
	var flag strings.Builder
	for _, c := range country {
		if c < 'A' || c > 'Z' {
			return ""
		}
		flag.WriteRune(0x1F1E6 + c - 'A')
	}
	return flag.String()
}
