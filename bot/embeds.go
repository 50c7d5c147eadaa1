package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"bonkers/osu"
)

const embedColor = 0xFFA500

// Custom emotes for score grades, shared across the guilds the bot lives in.
var gradeEmojiMap = map[string]string{
	"XH":  "<:osuXH:835607165279797269>",
	"SSH": "<:osuXH:835607165279797269>",
	"X":   "<:osuSS:835607691787239435>",
	"SS":  "<:osuSS:835607691787239435>",
	"SH":  "<:osuSH:835607165653745684>",
	"S":   "<:osuS:835607691790647327>",
	"A":   "<:osuA:835607165263020052>",
	"B":   "<:osuB:835611278357299202>",
	"C":   "<:osuC:835611278172487694>",
}

const kekwEmote = "<:KEKW:805177941814018068>"

func gradeEmoji(grade string) string {
	if emoji, ok := gradeEmojiMap[grade]; ok {
		return emoji
	}
	return fmt.Sprintf("**%s**", grade)
}

// scoreEmbed builds the full card for one top play. A failed beatmap lookup
// costs the card; callers skip nil embeds.
func (b *Bot) scoreEmbed(ctx context.Context, score osu.Score, osuID, username string) *discordgo.MessageEmbed {
	bmp, err := b.osuClient.GetBeatmap(ctx, score.BeatmapID)
	if err != nil {
		log.Errorf("Failed to fetch beatmap %s for score card: %v", score.BeatmapID, err)
		return nil
	}

	title := fmt.Sprintf("%s[%s] | %.2f★", bmp.Title, bmp.Version, bmp.Stars)
	embed := &discordgo.MessageEmbed{
		Type:  discordgo.EmbedTypeRich,
		Color: embedColor,
		Description: fmt.Sprintf("**#%d: [%s](%s)\n%s | %s | %.2f%% (%d/%d) | %gpp | %s**",
			score.Ranking+1,
			title,
			osu.BeatmapLink(score.BeatmapID),
			gradeEmoji(score.Grade),
			osu.ModString(score.Mods),
			score.Accuracy(),
			score.MaxCombo,
			bmp.MaxCombo,
			score.PP,
			humanize.Time(score.Date),
		),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Beatmap Info",
				Value: fmt.Sprintf("Length **%s** ~ CS**%g** AR**%g** OD**%g** HP**%g** ~ **%g** BPM ~ **%.2f**★",
					formatSeconds(bmp.TotalLength), bmp.CS, bmp.AR, bmp.OD, bmp.HP, bmp.BPM, bmp.Stars),
				Inline: false,
			},
		},
		Author: &discordgo.MessageEmbedAuthor{
			Name:    fmt.Sprintf("%s - #%d Top Play", username, score.Ranking+1),
			URL:     osu.ProfileLink(osuID),
			IconURL: osu.ProfileThumb(osuID),
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: osu.BeatmapThumb(bmp.SetID)},
	}
	return embed
}

// formatScoreInline renders the one-line version of a score used in update
// and toprange embeds.
func (b *Bot) formatScoreInline(ctx context.Context, score osu.Score) string {
	title := fmt.Sprintf("beatmap %s", score.BeatmapID)
	if bmp, err := b.osuClient.GetBeatmap(ctx, score.BeatmapID); err == nil {
		title = formatTitle(bmp.Title, bmp.Version)
	} else {
		log.Errorf("Failed to fetch beatmap %s for inline score: %v", score.BeatmapID, err)
	}

	modString := ""
	if score.Mods > 0 {
		modString = fmt.Sprintf("**%s**", osu.ModString(score.Mods))
	}
	return fmt.Sprintf("**#%d**: [%s](%s)%s \t| %s %.2f%% \t| %gpp",
		score.Ranking+1,
		title,
		osu.BeatmapLink(score.BeatmapID),
		modString,
		gradeEmoji(score.Grade),
		score.Accuracy(),
		score.PP,
	)
}

// updateEmbed builds the osu!track update summary card.
func (b *Bot) updateEmbed(ctx context.Context, update *osu.TrackUpdate, osuID string, showHighscores bool) *discordgo.MessageEmbed {
	kekw := ""
	if len(update.NewHighscores) == 0 {
		kekw = " " + kekwEmote
	}

	inline := ""
	if showHighscores {
		lines := make([]string, 0, len(update.NewHighscores))
		for _, score := range update.NewHighscores {
			lines = append(lines, b.formatScoreInline(ctx, score))
		}
		inline = strings.Join(lines, "\n")
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("osu!track update for %s", update.Username),
		Type:  discordgo.EmbedTypeRich,
		Color: embedColor,
		Description: fmt.Sprintf(
			"[osu! profile](%s) · [osu!track profile](%s)\n**Rank**: %s\n**PP**: %s\n**Playcount**: %d\n**Acc**: %s\n\n**New Highscores**: %d%s\n%s",
			osu.ProfileLink(osuID),
			osu.TrackProfileLink(update.Username),
			formatDiffInt(update.RankDiff),
			formatDiffFloat(update.PPDiff, 4),
			update.PlayCount,
			formatDiffFloat(update.AccuracyDiff, 2),
			len(update.NewHighscores),
			kekw,
			inline,
		),
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: osu.ProfileThumb(osuID)},
	}
	return embed
}

// topRangeEmbed builds the compact listing for a range of top scores.
func (b *Bot) topRangeEmbed(ctx context.Context, user *osu.User, scores []osu.Score, rankStart, rankEnd int) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(scores))
	for _, score := range scores {
		lines = append(lines, b.formatScoreInline(ctx, score))
	}
	return &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Color:       embedColor,
		Description: strings.Join(lines, "\n"),
		Author: &discordgo.MessageEmbedAuthor{
			Name:    fmt.Sprintf("Top %d - %d scores for %s", rankStart, rankEnd, user.Username),
			URL:     osu.ProfileLink(user.ID),
			IconURL: osu.ProfileThumb(user.ID),
		},
	}
}

// profileEmbed builds the profile card for an osu account.
func profileEmbed(user *osu.User) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s - %gpp | #%d | %s #%d",
			flagEmoji(user.Country), user.Username, user.PP, user.Rank, user.Country, user.CountryRank),
		URL:   osu.ProfileLink(user.ID),
		Type:  discordgo.EmbedTypeRich,
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Ranked Score", Value: humanize.Comma(user.RankedScore), Inline: true},
			{Name: "Total Score", Value: humanize.Comma(user.TotalScore), Inline: true},
			{Name: "Hit Accuracy", Value: fmt.Sprintf("%.2f%%", user.Accuracy), Inline: true},
			{Name: "Play Count", Value: fmt.Sprintf("%d", user.PlayCount), Inline: true},
			{Name: "Play Time", Value: formatSeconds(user.SecondsPlayed), Inline: true},
			{Name: "Level", Value: fmt.Sprintf("%g", user.Level), Inline: true},
			{
				Name: "Grades",
				Value: fmt.Sprintf("%s ​ %d ​ %s ​ %d ​ %s ​ %d ​ %s ​ %d ​ %s ​ %d",
					gradeEmoji("XH"), user.CountSSH,
					gradeEmoji("SS"), user.CountSS,
					gradeEmoji("SH"), user.CountSH,
					gradeEmoji("S"), user.CountS,
					gradeEmoji("A"), user.CountA),
				Inline: false,
			},
		},
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: osu.ProfileThumb(user.ID)},
	}
}
