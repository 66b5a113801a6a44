package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"frogbot/bot"
	"frogbot/config"
	"frogbot/database"
	"frogbot/events"
	"frogbot/repository"
	"frogbot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting frogbot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	approvalService := service.NewApprovalService(uowFactory, service.ApprovalConfig{
		SheetChannelID: cfg.SheetChannelID,
		DevGuildID:     cfg.DevGuildID,
	})
	settingsService := service.NewSettingsService(uowFactory)
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:            cfg.DiscordToken,
		PersonalGuildID:  cfg.PersonalGuildID,
		DevGuildID:       cfg.DevGuildID,
		OwnerID:          cfg.OwnerID,
		SheetChannelID:   cfg.SheetChannelID,
		GeneralChannelID: cfg.GeneralChannelID,
		ApprovalRoles:    cfg.ApprovalRoles,
		BotModRoles:      cfg.BotModRoles,
		PlayerRoleName:   cfg.PlayerRoleName,
		CommonerRoleName: cfg.CommonerRoleName,
		RolesChannelRef:  cfg.RolesChannelRef,
		AvraeChannelRef:  cfg.AvraeChannelRef,
	}
	discordBot, err := bot.New(botConfig, approvalService, settingsService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
