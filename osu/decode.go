package osu

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// The legacy osu! v1 API encodes every value as a JSON string, while the
// osutrack API returns properly typed numbers. The flex types below accept
// either encoding, so one Score shape covers both sources.

type flexString string

func (v *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = flexString(s)
		return nil
	}
	*v = flexString(data)
	return nil
}

type flexInt int

func (v *flexInt) UnmarshalJSON(data []byte) error {
	var raw flexString
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	if raw == "" || raw == "null" {
		*v = 0
		return nil
	}
	// Some counters come back as "123.0"
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("invalid integer value %q: %w", raw, err)
	}
	*v = flexInt(f)
	return nil
}

type flexInt64 int64

func (v *flexInt64) UnmarshalJSON(data []byte) error {
	var raw flexString
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	if raw == "" || raw == "null" {
		*v = 0
		return nil
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer value %q: %w", raw, err)
	}
	*v = flexInt64(n)
	return nil
}

type flexFloat float64

func (v *flexFloat) UnmarshalJSON(data []byte) error {
	var raw flexString
	if err := raw.UnmarshalJSON(data); err != nil {
		return err
	}
	if raw == "" || raw == "null" {
		*v = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return fmt.Errorf("invalid float value %q: %w", raw, err)
	}
	*v = flexFloat(f)
	return nil
}

// Submission timestamps arrive as "2006-01-02 15:04:05" in UTC; osutrack
// occasionally uses the RFC 3339 spelling of the same instant.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// UnmarshalJSON decodes a score from either API encoding. Ranking is only
// present in osutrack payloads; fetch-time assignment for get_user_best
// happens in the client.
func (s *Score) UnmarshalJSON(data []byte) error {
	var raw struct {
		BeatmapID flexString `json:"beatmap_id"`
		Score     flexInt64  `json:"score"`
		MaxCombo  flexInt    `json:"maxcombo"`
		Count300  flexInt    `json:"count300"`
		Count100  flexInt    `json:"count100"`
		Count50   flexInt    `json:"count50"`
		CountMiss flexInt    `json:"countmiss"`
		Mods      flexInt    `json:"enabled_mods"`
		Grade     string     `json:"rank"`
		PP        flexFloat  `json:"pp"`
		Ranking   flexInt    `json:"ranking"`
		Date      string     `json:"date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	date, err := parseDate(raw.Date)
	if err != nil {
		return fmt.Errorf("failed to decode score date: %w", err)
	}

	*s = Score{
		Ranking:   int(raw.Ranking),
		BeatmapID: string(raw.BeatmapID),
		Score:     int64(raw.Score),
		MaxCombo:  int(raw.MaxCombo),
		Count300:  int(raw.Count300),
		Count100:  int(raw.Count100),
		Count50:   int(raw.Count50),
		CountMiss: int(raw.CountMiss),
		Mods:      int(raw.Mods),
		Grade:     raw.Grade,
		PP:        float64(raw.PP),
		Date:      date,
	}
	return nil
}

// UnmarshalJSON decodes a get_user profile.
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID            flexString `json:"user_id"`
		Username      string     `json:"username"`
		Country       string     `json:"country"`
		PP            flexFloat  `json:"pp_raw"`
		Rank          flexInt    `json:"pp_rank"`
		CountryRank   flexInt    `json:"pp_country_rank"`
		RankedScore   flexInt64  `json:"ranked_score"`
		TotalScore    flexInt64  `json:"total_score"`
		Accuracy      flexFloat  `json:"accuracy"`
		PlayCount     flexInt    `json:"playcount"`
		SecondsPlayed flexInt    `json:"total_seconds_played"`
		Level         flexFloat  `json:"level"`
		CountSSH      flexInt    `json:"count_rank_ssh"`
		CountSS       flexInt    `json:"count_rank_ss"`
		CountSH       flexInt    `json:"count_rank_sh"`
		CountS        flexInt    `json:"count_rank_s"`
		CountA        flexInt    `json:"count_rank_a"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*u = User{
		ID:            string(raw.ID),
		Username:      raw.Username,
		Country:       raw.Country,
		PP:            float64(raw.PP),
		Rank:          int(raw.Rank),
		CountryRank:   int(raw.CountryRank),
		RankedScore:   int64(raw.RankedScore),
		TotalScore:    int64(raw.TotalScore),
		Accuracy:      float64(raw.Accuracy),
		PlayCount:     int(raw.PlayCount),
		SecondsPlayed: int(raw.SecondsPlayed),
		Level:         float64(raw.Level),
		CountSSH:      int(raw.CountSSH),
		CountSS:       int(raw.CountSS),
		CountSH:       int(raw.CountSH),
		CountS:        int(raw.CountS),
		CountA:        int(raw.CountA),
	}
	return nil
}

// UnmarshalJSON decodes a get_beatmaps entry.
func (b *Beatmap) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          flexString `json:"beatmap_id"`
		SetID       flexString `json:"beatmapset_id"`
		Title       string     `json:"title"`
		Version     string     `json:"version"`
		Stars       flexFloat  `json:"difficultyrating"`
		MaxCombo    flexInt    `json:"max_combo"`
		TotalLength flexInt    `json:"total_length"`
		CS          flexFloat  `json:"diff_size"`
		AR          flexFloat  `json:"diff_approach"`
		OD          flexFloat  `json:"diff_overall"`
		HP          flexFloat  `json:"diff_drain"`
		BPM         flexFloat  `json:"bpm"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*b = Beatmap{
		ID:          string(raw.ID),
		SetID:       string(raw.SetID),
		Title:       raw.Title,
		Version:     raw.Version,
		Stars:       float64(raw.Stars),
		MaxCombo:    int(raw.MaxCombo),
		TotalLength: int(raw.TotalLength),
		CS:          float64(raw.CS),
		AR:          float64(raw.AR),
		OD:          float64(raw.OD),
		HP:          float64(raw.HP),
		BPM:         float64(raw.BPM),
	}
	return nil
}

// UnmarshalJSON decodes an osutrack update response. Rank and accuracy fields
// are deltas against the user's previous recorded update.
func (t *TrackUpdate) UnmarshalJSON(data []byte) error {
	var raw struct {
		Username      string    `json:"username"`
		Exists        bool      `json:"exists"`
		RankDiff      flexInt   `json:"pp_rank"`
		PPDiff        flexFloat `json:"pp_raw"`
		PlayCount     flexInt   `json:"playcount"`
		AccuracyDiff  flexFloat `json:"accuracy"`
		NewHighscores []Score   `json:"newhs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = TrackUpdate{
		Username:      raw.Username,
		Exists:        raw.Exists,
		RankDiff:      int(raw.RankDiff),
		PPDiff:        float64(raw.PPDiff),
		PlayCount:     int(raw.PlayCount),
		AccuracyDiff:  float64(raw.AccuracyDiff),
		NewHighscores: raw.NewHighscores,
	}
	return nil
}
