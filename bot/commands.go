package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"bonkers/osu"
	"bonkers/service"

	"github.com/bwmarrin/discordgo"
)

const maxTopRangeScores = 15

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}
	if m.GuildID == "" {
		// Commands carry guild-scoped configuration; private messages have
		// none of it.
		return
	}

	ctx := context.Background()

	prefix := b.commandPrefix(ctx, m.GuildID)
	if !strings.HasPrefix(m.Content, prefix) {
		return
	}

	fields := strings.Fields(strings.TrimPrefix(m.Content, prefix))
	if len(fields) == 0 {
		return
	}
	command, args := fields[0], fields[1:]

	log.WithFields(log.Fields{
		"command": command,
		"guildID": m.GuildID,
		"userID":  m.Author.ID,
	}).Debug("Dispatching command")

	switch command {
	case "hello":
		b.reply(m.ChannelID, "Hello!")
	case "bonk":
		b.handleBonk(ctx, m)
	case "honk":
		b.reply(m.ChannelID, randomHonk())
	case "register", "r":
		b.handleRegister(ctx, m, args)
	case "unregister":
		b.handleUnregister(ctx, m, args)
	case "update", "u":
		b.handleUpdate(ctx, m, args)
	case "top", "t":
		b.handleTop(ctx, m, args)
	case "toprange", "tr", "topr":
		b.handleTopRange(ctx, m, args)
	case "profile", "p":
		b.handleProfile(ctx, m, args)
	case "autoupdates":
		b.handleAutoUpdates(ctx, m)
	case "cutoff":
		b.handleCutoff(ctx, m, args)
	case "prefix":
		b.handlePrefix(ctx, m, args)
	case "help":
		b.reply(m.ChannelID, helpMessage(prefix))
	}
}

// commandPrefix resolves the guild's prefix override, falling back to the
// configured default.
func (b *Bot) commandPrefix(ctx context.Context, guildID string) string {
	settings, err := b.guildSettingsService.Settings(ctx, guildID)
	if err != nil {
		log.Errorf("Failed to load settings for guild %s: %v", guildID, err)
		return b.config.DefaultPrefix
	}
	if settings.Prefix != "" {
		return settings.Prefix
	}
	return b.config.DefaultPrefix
}

func (b *Bot) handleBonk(ctx context.Context, m *discordgo.MessageCreate) {
	bonks, err := b.userService.Bonk(ctx, m.Author.ID)
	if err != nil {
		log.Errorf("Failed to bonk for user %s: %v", m.Author.ID, err)
		b.reply(m.ChannelID, "Something went wrong :(")
		return
	}
	plural := "s"
	if bonks == 1 {
		plural = ""
	}
	b.reply(m.ChannelID, fmt.Sprintf("Boop. %s has bonked the bonkers %d time%s", mention(m.Author.ID), bonks, plural))
}

func (b *Bot) handleRegister(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if len(args) == 0 {
		b.reply(m.ChannelID, "Please specify an osu profile username/id!")
		return
	}
	identifier := args[0]

	result, err := b.registrationService.Register(ctx, m.Author.ID, m.GuildID, m.ChannelID, identifier)
	if err != nil {
		log.Errorf("Registration failed for %s: %v", identifier, err)
		b.reply(m.ChannelID, fmt.Sprintf("User %s not found, you can try using an osu id instead", identifier))
		return
	}

	if result.AlreadyRegistered {
		b.reply(m.ChannelID, fmt.Sprintf("osu user **%s** is already registered", result.User.Username))
		return
	}

	b.react(m, "✅")
	b.reply(m.ChannelID, fmt.Sprintf("User %s is now registered to %s. Here's your initial osu!track update",
		result.User.Username, mention(m.Author.ID)))
	// The update itself arrives via the registration event subscription.
}

func (b *Bot) handleUnregister(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if !b.isAdmin(m) {
		b.reply(m.ChannelID, "You must be an admin to unregister users")
		return
	}

	targets := make([]string, 0, len(m.Mentions))
	for _, user := range m.Mentions {
		targets = append(targets, user.ID)
	}
	// Raw ids work too, for users who already left the guild.
	for _, arg := range args {
		if _, err := strconv.ParseUint(arg, 10, 64); err == nil {
			targets = append(targets, arg)
		}
	}
	if len(targets) == 0 {
		b.reply(m.ChannelID, "Please mention the users to unregister")
		return
	}

	if err := b.registrationService.Unregister(ctx, targets, m.GuildID); err != nil {
		log.Errorf("Failed to unregister users in guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Something went wrong :(")
		return
	}
	b.react(m, "✅")
	b.reply(m.ChannelID, fmt.Sprintf("Removed %d user(s) from automatic updates in this server", len(targets)))
}

func (b *Bot) handleUpdate(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	osuID := ""
	if len(args) > 0 {
		osuID = args[0]
	} else {
		stored, err := b.userService.OsuID(ctx, m.Author.ID)
		if err != nil {
			log.Errorf("Failed to look up osu id for user %s: %v", m.Author.ID, err)
		}
		osuID = stored
	}
	if osuID == "" {
		b.reply(m.ChannelID, fmt.Sprintf(
			"No osu profile set for user %s. You can register your osu profile using the register command or specify an osu user id to update directly with update <uid>.",
			mention(m.Author.ID)))
		return
	}

	b.sendTrackUpdate(ctx, m.ChannelID, osuID, true)
}

// sendTrackUpdate triggers an osutrack update and renders the result, with
// the per-highscore cards optionally suppressed.
func (b *Bot) sendTrackUpdate(ctx context.Context, channelID, osuID string, showHighscores bool) {
	update, err := b.osuClient.RequestUpdate(ctx, osuID, osu.ModeStandard)
	if err != nil {
		if errors.Is(err, osu.ErrInvalidUpdateUser) {
			b.reply(channelID, "Invalid update request, please make sure a valid user id was given/registered.")
			return
		}
		log.Errorf("osutrack update failed for %s: %v", osuID, err)
		b.reply(channelID, "Something went wrong :(")
		return
	}

	b.replyEmbed(channelID, b.updateEmbed(ctx, update, osuID, showHighscores))
	if showHighscores {
		for _, score := range update.NewHighscores {
			if embed := b.scoreEmbed(ctx, score, osuID, update.Username); embed != nil {
				b.replyEmbed(channelID, embed)
			}
		}
	}
}

func (b *Bot) handleTop(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	rank := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil || parsed < 1 || parsed > 100 {
			b.reply(m.ChannelID, "invalid score rank (must be between 1-100)")
			return
		}
		rank = parsed
	}

	identifier := b.targetIdentifier(ctx, m, args, 1)
	if identifier == "" {
		b.reply(m.ChannelID, "invalid user")
		return
	}

	scores, err := b.osuClient.GetUserBest(ctx, identifier, rank)
	if err != nil || len(scores) < rank {
		b.reply(m.ChannelID, fmt.Sprintf("No top scores found for user %s. Make sure to provide a valid osu username/id.", identifier))
		return
	}
	score := scores[rank-1]

	user, err := b.osuClient.GetUser(ctx, identifier, osu.ModeStandard)
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("User %s not found, you can try using an osu id instead", identifier))
		return
	}

	if embed := b.scoreEmbed(ctx, score, user.ID, user.Username); embed != nil {
		b.replyEmbed(m.ChannelID, embed)
	}
}

func (b *Bot) handleTopRange(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	rankStart, rankEnd := 1, 10
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			b.reply(m.ChannelID, "invalid score rank range (max 15 scores, ranks must be between 1-100)")
			return
		}
		rankStart = parsed
	}
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			b.reply(m.ChannelID, "invalid score rank range (max 15 scores, ranks must be between 1-100)")
			return
		}
		rankEnd = parsed
	}
	if rankStart < 1 || rankEnd < 1 || rankEnd > 100 || rankStart > rankEnd || rankEnd-rankStart >= maxTopRangeScores {
		b.reply(m.ChannelID, "invalid score rank range (max 15 scores, ranks must be between 1-100)")
		return
	}

	identifier := b.targetIdentifier(ctx, m, args, 2)
	if identifier == "" {
		b.reply(m.ChannelID, "invalid user")
		return
	}

	scores, err := b.osuClient.GetUserBest(ctx, identifier, rankEnd)
	if err != nil || len(scores) == 0 {
		b.reply(m.ChannelID, fmt.Sprintf("No top scores found for user %s. Make sure to provide a valid osu username/id.", identifier))
		return
	}
	if rankStart > len(scores) {
		b.reply(m.ChannelID, fmt.Sprintf("User %s has fewer than %d top scores.", identifier, rankStart))
		return
	}
	if rankEnd > len(scores) {
		rankEnd = len(scores)
	}

	user, err := b.osuClient.GetUser(ctx, identifier, osu.ModeStandard)
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("User %s not found, you can try using an osu id instead", identifier))
		return
	}

	b.replyEmbed(m.ChannelID, b.topRangeEmbed(ctx, user, scores[rankStart-1:rankEnd], rankStart, rankEnd))
}

func (b *Bot) handleProfile(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	identifier := b.targetIdentifier(ctx, m, args, 0)
	if identifier == "" {
		b.reply(m.ChannelID, "No osu account registered!")
		return
	}

	user, err := b.osuClient.GetUser(ctx, identifier, osu.ModeStandard)
	if err != nil {
		b.reply(m.ChannelID, fmt.Sprintf("User %s not found, you can try using an osu id instead", identifier))
		return
	}
	b.replyEmbed(m.ChannelID, profileEmbed(user))
}

// targetIdentifier picks the osu account to query: the positional argument at
// argIndex if present, otherwise the caller's registered account.
func (b *Bot) targetIdentifier(ctx context.Context, m *discordgo.MessageCreate, args []string, argIndex int) string {
	if len(args) > argIndex {
		return args[argIndex]
	}
	stored, err := b.userService.OsuID(ctx, m.Author.ID)
	if err != nil {
		log.Errorf("Failed to look up osu id for user %s: %v", m.Author.ID, err)
		return ""
	}
	return stored
}

func (b *Bot) handleAutoUpdates(ctx context.Context, m *discordgo.MessageCreate) {
	if !b.isAdmin(m) {
		b.reply(m.ChannelID, "You must be an admin to enable automatic top score updates")
		return
	}

	settings, err := b.guildSettingsService.Settings(ctx, m.GuildID)
	if err != nil {
		log.Errorf("Failed to load settings for guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Something went wrong :(")
		return
	}
	previousChannel := settings.UpdateChannelID

	if err := b.guildSettingsService.SetUpdateChannel(ctx, m.GuildID, m.ChannelID); err != nil {
		log.Errorf("Failed to set update channel for guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Something went wrong :(")
		return
	}

	b.react(m, "✅")
	if previousChannel != "" && previousChannel != m.ChannelID {
		b.reply(m.ChannelID, fmt.Sprintf("Bonkers will now automatically send top scores in %s instead of %s",
			channelMention(m.ChannelID), channelMention(previousChannel)))
	} else {
		b.reply(m.ChannelID, fmt.Sprintf("Bonkers will now automatically send top scores in %s", channelMention(m.ChannelID)))
	}
}

func (b *Bot) handleCutoff(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if !b.isAdmin(m) {
		b.reply(m.ChannelID, "You must be an admin to change the score rank cutoff")
		return
	}
	if len(args) == 0 {
		b.reply(m.ChannelID, "Please specify a score rank cutoff between 1 and 100")
		return
	}

	cutoff, err := strconv.Atoi(args[0])
	if err != nil {
		b.reply(m.ChannelID, "Score rank cutoff must be a number between 1 and 100")
		return
	}

	if err := b.guildSettingsService.SetScoreRankCutoff(ctx, m.GuildID, cutoff); err != nil {
		if errors.Is(err, service.ErrCutoffOutOfRange) {
			b.reply(m.ChannelID, "Score rank cutoff must be a number between 1 and 100")
			return
		}
		log.Errorf("Failed to set cutoff for guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Something went wrong :(")
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("Only top scores ranked #%d or better will be broadcast in this server", cutoff))
}

func (b *Bot) handlePrefix(ctx context.Context, m *discordgo.MessageCreate, args []string) {
	if !b.isAdmin(m) {
		b.reply(m.ChannelID, "You must be an admin to change the command prefix")
		return
	}
	if len(args) == 0 {
		b.reply(m.ChannelID, "Please specify a new command prefix")
		return
	}

	if err := b.guildSettingsService.SetPrefix(ctx, m.GuildID, args[0]); err != nil {
		if errors.Is(err, service.ErrEmptyPrefix) {
			b.reply(m.ChannelID, "Please specify a new command prefix")
			return
		}
		log.Errorf("Failed to set prefix for guild %s: %v", m.GuildID, err)
		b.reply(m.ChannelID, "Something went wrong :(")
		return
	}
	b.reply(m.ChannelID, fmt.Sprintf("Command prefix for this server is now `%s`", args[0]))
}

func helpMessage(prefix string) string {
	return strings.Join([]string{
		"**Bonkers commands**",
		fmt.Sprintf("`%shello` - says hello", prefix),
		fmt.Sprintf("`%sbonk` - bonk the bonkers", prefix),
		fmt.Sprintf("`%shonk` - honk", prefix),
		fmt.Sprintf("`%sregister <username/id>` - registers an osu account to your discord user and runs an initial osu!track update", prefix),
		fmt.Sprintf("`%supdate [uid]` - runs an osu!track update for your registered profile or an explicit user id", prefix),
		fmt.Sprintf("`%stop [rank] [username/id]` - shows the top #rank score for an osu user", prefix),
		fmt.Sprintf("`%stoprange [start] [end] [username/id]` - shows a range of top scores (max 15)", prefix),
		fmt.Sprintf("`%sprofile [username/id]` - displays a profile card", prefix),
		fmt.Sprintf("`%sunregister <@user...>` - (admin) removes users from automatic updates in this server", prefix),
		fmt.Sprintf("`%sautoupdates` - (admin) sends automatic top score updates in the current channel", prefix),
		fmt.Sprintf("`%scutoff <1-100>` - (admin) only broadcast scores ranked at or above this position", prefix),
		fmt.Sprintf("`%sprefix <prefix>` - (admin) changes the command prefix for this server", prefix),
	}, "\n")
}
