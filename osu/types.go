package osu

import "time"

// Game mode identifiers as used by the osu! API.
const (
	ModeStandard = 0
)

// User is an osu! account profile as returned by get_user.
type User struct {
	ID            string
	Username      string
	Country       string
	PP            float64
	Rank          int
	CountryRank   int
	RankedScore   int64
	TotalScore    int64
	Accuracy      float64
	PlayCount     int
	SecondsPlayed int
	Level         float64
	CountSSH      int
	CountSS       int
	CountSH       int
	CountS        int
	CountA        int
}

// Beatmap is the map metadata attached to a score card.
type Beatmap struct {
	ID          string
	SetID       string
	Title       string
	Version     string
	Stars       float64
	MaxCombo    int
	TotalLength int
	CS          float64
	AR          float64
	OD          float64
	HP          float64
	BPM         float64
}

// Score is one top play. Scores are ephemeral: fetched fresh on every poll
// and never persisted.
type Score struct {
	// Ranking is the zero-based position of this score within the fetch it
	// came from (best score first). It is reassigned on every fetch and is
	// not a stable identifier.
	Ranking   int
	BeatmapID string
	Score     int64
	MaxCombo  int
	Count300  int
	Count100  int
	Count50   int
	CountMiss int
	Mods      int
	Grade     string
	PP        float64
	Date      time.Time
}

// Accuracy computes the standard-mode hit accuracy percentage.
// See https://osu.ppy.sh/wiki/en/Accuracy
func (s *Score) Accuracy() float64 {
	total := s.CountMiss + s.Count50 + s.Count100 + s.Count300
	if total == 0 {
		return 0
	}
	return float64(s.Count50+2*s.Count100+6*s.Count300) / float64(total) / 6 * 100
}

// TrackUpdate is the result of an osutrack update trigger: the deltas since
// the user's last recorded update plus any newly-earned top scores.
type TrackUpdate struct {
	Username      string
	Exists        bool
	RankDiff      int
	PPDiff        float64
	PlayCount     int
	AccuracyDiff  float64
	NewHighscores []Score
}
