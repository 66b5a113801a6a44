package bot

import (
	"context"
	"fmt"
	"time"

	"frogbot/events"
	"frogbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token            string
	PersonalGuildID  int64
	DevGuildID       int64
	OwnerID          int64
	SheetChannelID   int64
	GeneralChannelID int64
	ApprovalRoles    []string
	BotModRoles      []string
	PlayerRoleName   string
	CommonerRoleName string
	RolesChannelRef  string
	AvraeChannelRef  string
}

type Bot struct {
	config          Config
	session         *discordgo.Session
	approvalService service.ApprovalService
	settingsService service.SettingsService
	eventBus        *events.Bus

	startTime time.Time
	readyTime time.Time
}

func New(config Config, approvalService service.ApprovalService, settingsService service.SettingsService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:          config,
		session:         dg,
		approvalService: approvalService,
		settingsService: settingsService,
		eventBus:        eventBus,
		startTime:       time.Now(),
	}

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleCommands)

	// Approval reactions arrive as raw gateway events
	dg.AddHandler(bot.handleReactionAdd)
	dg.AddHandler(bot.handleReactionRemove)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Side effects of a sheet crossing the approval threshold run off the
	// event bus, after the record change has committed
	eventBus.Subscribe(events.EventTypeSheetApproved, bot.onSheetApproved)
	eventBus.Subscribe(events.EventTypeStatusChanged, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.StatusChangedEvent); ok {
			if err := bot.session.UpdateGameStatus(0, e.Status); err != nil {
				log.Errorf("Error updating bot status: %v", err)
			}
		}
	})

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// handleReady restores the persisted custom status once connected
func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	b.readyTime = time.Now()
	log.Infof("Logged in as %s", r.User.String())

	status, err := b.settingsService.Status(context.Background())
	if err != nil {
		log.Errorf("Error loading bot status: %v", err)
		return
	}
	if status != "" {
		if err := s.UpdateGameStatus(0, status); err != nil {
			log.Errorf("Error setting bot status: %v", err)
		}
	}
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	if i.Member == nil {
		return
	}

	// Muted members are ignored outright, no feedback
	muted, err := b.settingsService.IsMuted(context.Background(), parseSnowflake(i.Member.User.ID))
	if err != nil {
		log.Errorf("Error checking mute list: %v", err)
	} else if muted {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "sheet":
		b.handleSheetCommand(s, i)
	case "admin":
		b.handleAdminCommand(s, i)
	case "ping":
		b.handlePing(s, i)
	case "uptime":
		b.handleUptime(s, i)
	case "info":
		b.handleInfo(s, i)
	}
}
