package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	// PersonalGuildID is the single guild the approval workflow operates on
	PersonalGuildID int64
	// DevGuildID is an allow-listed alternate guild for development; sheet
	// submissions there bypass the channel check
	DevGuildID int64
	OwnerID    int64

	// Database configuration
	DatabaseURL string

	// Sheet approval configuration
	SheetChannelID   int64
	GeneralChannelID int64
	// ApprovalRoles are lowercased role names whose holders may approve sheets
	ApprovalRoles []string
	// BotModRoles are role names permitted to run maintenance commands
	BotModRoles      []string
	PlayerRoleName   string
	CommonerRoleName string
	// Channel mentions embedded in the approved-sheet instructions
	RolesChannelRef string
	AvraeChannelRef string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from the environment, with .env as a fallback
// source for local development
func load() (*Config, error) {
	// Missing .env is fine, the real environment takes precedence anyway
	_ = godotenv.Load()

	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		PersonalGuildID:  parseID(os.Getenv("PERSONAL_GUILD_ID")),
		DevGuildID:       parseID(os.Getenv("DEV_GUILD_ID")),
		OwnerID:          parseID(os.Getenv("OWNER_ID")),
		SheetChannelID:   parseID(os.Getenv("SHEET_CHANNEL_ID")),
		GeneralChannelID: parseID(os.Getenv("GENERAL_CHANNEL_ID")),

		ApprovalRoles:    []string{"dm", "lord of the sheet", "approval team"},
		BotModRoles:      []string{"DM", "Dragonspeaker", "Bot Admin"},
		PlayerRoleName:   "Player",
		CommonerRoleName: "Commoner",

		RolesChannelRef: os.Getenv("ROLES_CHANNEL_REF"),
		AvraeChannelRef: os.Getenv("AVRAE_CHANNEL_REF"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if roles := parseList(os.Getenv("APPROVAL_ROLES")); len(roles) > 0 {
		for i, role := range roles {
			roles[i] = strings.ToLower(role)
		}
		config.ApprovalRoles = roles
	}
	if roles := parseList(os.Getenv("BOT_MOD_ROLES")); len(roles) > 0 {
		config.BotModRoles = roles
	}
	if name := os.Getenv("PLAYER_ROLE_NAME"); name != "" {
		config.PlayerRoleName = name
	}
	if name := os.Getenv("COMMONER_ROLE_NAME"); name != "" {
		config.CommonerRoleName = name
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.PersonalGuildID == 0 {
			return nil, fmt.Errorf("PERSONAL_GUILD_ID is required")
		}
		if config.SheetChannelID == 0 {
			return nil, fmt.Errorf("SHEET_CHANNEL_ID is required")
		}
	}

	return config, nil
}

func parseID(value string) int64 {
	if value == "" {
		return 0
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func parseList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
