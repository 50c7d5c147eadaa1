package osu

import "fmt"

// Link builders for the osu! and osutrack websites.

func ProfileLink(osuID string) string {
	return fmt.Sprintf("https://osu.ppy.sh/users/%s", osuID)
}

func ProfileThumb(osuID string) string {
	return fmt.Sprintf("http://s.ppy.sh/a/%s", osuID)
}

func BeatmapLink(beatmapID string) string {
	return fmt.Sprintf("https://osu.ppy.sh/b/%s", beatmapID)
}

func BeatmapThumb(beatmapsetID string) string {
	return fmt.Sprintf("https://b.ppy.sh/thumb/%sl.jpg", beatmapsetID)
}

func TrackProfileLink(username string) string {
	return fmt.Sprintf("https://ameobea.me/osutrack/user/%s", username)
}
