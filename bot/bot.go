package bot

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"bonkers/events"
	"bonkers/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token         string
	DefaultPrefix string
}

type Bot struct {
	config               Config
	session              *discordgo.Session
	userService          service.UserService
	registrationService  service.RegistrationService
	guildSettingsService service.GuildSettingsService
	trackerService       service.TrackerService
	osuClient            service.OsuClient
	eventBus             *events.Bus

	workerOnce sync.Once
	workerMu   sync.Mutex
	workerStop func()
}

// New creates the bot and its session without connecting. The tracker
// service needs the bot as its send capability, so it is injected in Start
// once both exist.
func New(config Config, userService service.UserService, registrationService service.RegistrationService, guildSettingsService service.GuildSettingsService, osuClient service.OsuClient, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	bot := &Bot{
		config:               config,
		session:              dg,
		userService:          userService,
		registrationService:  registrationService,
		guildSettingsService: guildSettingsService,
		osuClient:            osuClient,
		eventBus:             eventBus,
	}

	// Register message command handler
	dg.AddHandler(bot.handleMessage)

	// The auto-update worker must not fire before the send capability is
	// usable, so it starts from the ready event rather than from Start.
	dg.AddHandler(bot.handleReady)

	// A successful registration is followed by an initial osu!track update
	// rendered into the channel the registration came from, with the
	// high-score cards suppressed.
	eventBus.Subscribe(events.EventTypeUserRegistered, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.UserRegisteredEvent); ok {
			bot.sendTrackUpdate(ctx, e.ChannelID, e.OsuID, false)
		}
	})

	return bot, nil
}

// Start attaches the tracker service and opens the websocket connection.
func (b *Bot) Start(trackerService service.TrackerService) error {
	b.trackerService = trackerService
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	b.stopWorker()
	return b.session.Close()
}

// stopWorker stops the auto-update worker if it has started. Safe to call
// multiple times and concurrently with the ready handler.
func (b *Bot) stopWorker() {
	b.workerMu.Lock()
	stop := b.workerStop
	b.workerStop = nil
	b.workerMu.Unlock()
	if stop != nil {
		stop()
	}
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Infof("%s has connected to Discord", r.User.Username)

	// The ready handler runs on a discordgo goroutine while Close may run
	// on the main one, so the stop handle is published under a lock.
	b.workerOnce.Do(func() {
		stop := b.StartAutoUpdateWorker(context.Background())
		b.workerMu.Lock()
		b.workerStop = stop
		b.workerMu.Unlock()
	})
}

// isAdmin reports whether the message author holds the administrator
// permission in the channel the message came from.
func (b *Bot) isAdmin(m *discordgo.MessageCreate) bool {
	perms, err := b.session.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		log.Errorf("Failed to resolve permissions for user %s: %v", m.Author.ID, err)
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}

func (b *Bot) reply(channelID, content string) {
	if _, err := b.session.ChannelMessageSend(channelID, content); err != nil {
		log.Errorf("Failed to send message to channel %s: %v", channelID, err)
	}
}

func (b *Bot) replyEmbed(channelID string, embed *discordgo.MessageEmbed) {
	if _, err := b.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Errorf("Failed to send embed to channel %s: %v", channelID, err)
	}
}

func (b *Bot) react(m *discordgo.MessageCreate, emoji string) {
	if err := b.session.MessageReactionAdd(m.ChannelID, m.ID, emoji); err != nil {
		log.Errorf("Failed to add reaction: %v", err)
	}
}

func mention(discordID string) string {
	return fmt.Sprintf("<@%s>", discordID)
}

func channelMention(channelID string) string {
	return fmt.Sprintf("<#%s>", channelID)
}
