package osu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetUser_DecodesStringTypedPayload(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_user", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("k"))
		assert.Equal(t, "peppy", r.URL.Query().Get("u"))
		assert.Equal(t, "0", r.URL.Query().Get("m"))
		// The v1 API wraps the profile in a list and stringifies every
		// number.
		w.Write([]byte(`[{
			"user_id": "2",
			"username": "peppy",
			"country": "AU",
			"pp_raw": "4923.15",
			"pp_rank": "12345",
			"pp_country_rank": "678",
			"ranked_score": "12345678901",
			"total_score": "98765432109",
			"accuracy": "98.5231",
			"playcount": "25000",
			"total_seconds_played": "3600000",
			"level": "101.5",
			"count_rank_ssh": "10",
			"count_rank_ss": "20",
			"count_rank_sh": "30",
			"count_rank_s": "40",
			"count_rank_a": "50"
		}]`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "")

	user, err := client.GetUser(ctx, "peppy", ModeStandard)

	require.NoError(t, err)
	assert.Equal(t, "2", user.ID)
	assert.Equal(t, "peppy", user.Username)
	assert.Equal(t, "AU", user.Country)
	assert.InDelta(t, 4923.15, user.PP, 0.001)
	assert.Equal(t, 12345, user.Rank)
	assert.Equal(t, int64(12345678901), user.RankedScore)
	assert.Equal(t, 25000, user.PlayCount)
	assert.Equal(t, 10, user.CountSSH)
}

func TestClient_GetUser_EmptyListIsNotFound(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "")

	_, err := client.GetUser(ctx, "nobody", ModeStandard)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestClient_GetUserBest_AssignsRankingByPosition(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_user_best", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			{"beatmap_id": "12345", "score": "987654", "maxcombo": "500",
			 "count300": "400", "count100": "10", "count50": "0", "countmiss": "1",
			 "enabled_mods": "72", "rank": "S", "pp": "321.5",
			 "date": "2024-03-01 11:58:30"},
			{"beatmap_id": "67890", "score": "123456", "maxcombo": "200",
			 "count300": "150", "count100": "5", "count50": "2", "countmiss": "0",
			 "enabled_mods": "0", "rank": "A", "pp": "120.1",
			 "date": "2023-06-15 08:00:00"}
		]`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "")

	scores, err := client.GetUserBest(ctx, "2", 100)

	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 0, scores[0].Ranking)
	assert.Equal(t, 1, scores[1].Ranking)
	assert.Equal(t, "12345", scores[0].BeatmapID)
	assert.Equal(t, int64(987654), scores[0].Score)
	assert.Equal(t, 72, scores[0].Mods)
	assert.Equal(t, "S", scores[0].Grade)
	assert.Equal(t, time.Date(2024, 3, 1, 11, 58, 30, 0, time.UTC), scores[0].Date)
}

func TestClient_GetBeatmap(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get_beatmaps", r.URL.Path)
		assert.Equal(t, "12345", r.URL.Query().Get("b"))
		w.Write([]byte(`[{
			"beatmap_id": "12345",
			"beatmapset_id": "999",
			"title": "FREEDOM DiVE",
			"version": "FOUR DIMENSIONS",
			"difficultyrating": "7.52",
			"max_combo": "2385",
			"total_length": "258",
			"diff_size": "4", "diff_approach": "9", "diff_overall": "8", "diff_drain": "6",
			"bpm": "222.22"
		}]`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "")

	beatmap, err := client.GetBeatmap(ctx, "12345")

	require.NoError(t, err)
	assert.Equal(t, "12345", beatmap.ID)
	assert.Equal(t, "999", beatmap.SetID)
	assert.Equal(t, "FREEDOM DiVE", beatmap.Title)
	assert.InDelta(t, 7.52, beatmap.Stars, 0.001)
	assert.Equal(t, 2385, beatmap.MaxCombo)
}

func TestClient_GetBeatmap_EmptyListIsNotFound(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "")

	_, err := client.GetBeatmap(ctx, "0")

	assert.ErrorIs(t, err, ErrBeatmapNotFound)
}

func TestClient_RequestUpdate_DecodesTypedPayload(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/update", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "2", r.URL.Query().Get("user"))
		assert.Equal(t, "0", r.URL.Query().Get("mode"))
		// osutrack returns typed numbers, and diffs rather than totals.
		w.Write([]byte(`{
			"username": "peppy",
			"exists": true,
			"pp_rank": -42,
			"pp_raw": 15.3,
			"playcount": 12,
			"accuracy": 0.02,
			"newhs": [
				{"beatmap_id": "12345", "score": 987654, "maxcombo": 500,
				 "count300": 400, "count100": 10, "count50": 0, "countmiss": 1,
				 "enabled_mods": 0, "rank": "S", "pp": 321.5, "ranking": 3,
				 "date": "2024-03-01T11:58:30"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient("secret", "", server.URL)

	update, err := client.RequestUpdate(ctx, "2", ModeStandard)

	require.NoError(t, err)
	assert.Equal(t, "peppy", update.Username)
	assert.True(t, update.Exists)
	assert.Equal(t, -42, update.RankDiff)
	assert.InDelta(t, 15.3, update.PPDiff, 0.001)
	assert.Equal(t, 12, update.PlayCount)
	require.Len(t, update.NewHighscores, 1)
	assert.Equal(t, 3, update.NewHighscores[0].Ranking)
	assert.Equal(t, time.Date(2024, 3, 1, 11, 58, 30, 0, time.UTC), update.NewHighscores[0].Date)
}

func TestClient_RequestUpdate_BadRequestIsInvalidUser(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient("secret", "", server.URL)

	_, err := client.RequestUpdate(ctx, "not-an-id", ModeStandard)

	assert.ErrorIs(t, err, ErrInvalidUpdateUser)
}

func TestClient_GetUser_UpstreamError(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("secret", server.URL, "")

	_, err := client.GetUser(ctx, "peppy", ModeStandard)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}
