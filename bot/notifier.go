package bot

import (
	"context"
	"fmt"

	"bonkers/osu"
)

// NotifyNewScores implements the tracker's channel-send capability: one
// notice for the user, then one card per score in the order given (best
// score first). An error aborts only this channel's broadcast; the tracker
// keeps isolating failures per guild.
func (b *Bot) NotifyNewScores(ctx context.Context, channelID, discordID string, user *osu.User, scores []osu.Score) error {
	_, err := b.session.ChannelMessageSend(channelID, fmt.Sprintf("New top scores for %s", mention(discordID)))
	if err != nil {
		return fmt.Errorf("failed to send score notice: %w", err)
	}

	for _, score := range scores {
		embed := b.scoreEmbed(ctx, score, user.ID, user.Username)
		if embed == nil {
			// Beatmap lookup failed; the card is dropped, not the broadcast.
			continue
		}
		if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
			return fmt.Errorf("failed to send score card: %w", err)
		}
	}
	return nil
}
