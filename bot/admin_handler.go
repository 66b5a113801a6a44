package bot

import (
	"context"
	"fmt"

	"frogbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (b *Bot) handleAdminCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if parseSnowflake(i.Member.User.ID) != b.config.OwnerID {
		common.RespondWithError(s, i, "Admin commands are owner only.")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "status":
		b.handleAdminStatus(s, i, options[0])
	case "mute":
		b.handleAdminMute(s, i, options[0])
	case "unmute":
		b.handleAdminUnmute(s, i, options[0])
	}
}

func (b *Bot) handleAdminStatus(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	if len(sub.Options) == 0 {
		if err := b.settingsService.ClearStatus(ctx); err != nil {
			log.Errorf("Error clearing bot status: %v", err)
			common.RespondWithError(s, i, "Something went wrong. Please try again later.")
			return
		}
		if err := common.RespondWithSuccess(s, i, "Status reset.", true); err != nil {
			log.Errorf("Error responding to status reset: %v", err)
		}
		return
	}

	value := sub.Options[0].StringValue()
	if err := b.settingsService.SetStatus(ctx, value); err != nil {
		log.Errorf("Error setting bot status: %v", err)
		common.RespondWithError(s, i, "Something went wrong. Please try again later.")
		return
	}
	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("Status changed to %q.", value), true); err != nil {
		log.Errorf("Error responding to status change: %v", err)
	}
}

func (b *Bot) handleAdminMute(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	user := sub.Options[0].UserValue(s)
	changed, err := b.settingsService.Mute(ctx, parseSnowflake(user.ID))
	if err != nil {
		log.Errorf("Error muting user %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Something went wrong. Please try again later.")
		return
	}

	if !changed {
		if err := common.RespondWithMessage(s, i, fmt.Sprintf("User %s has already been muted.", user.Username), true); err != nil {
			log.Errorf("Error responding to mute: %v", err)
		}
		return
	}
	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("User %s has been muted.", user.Username), true); err != nil {
		log.Errorf("Error responding to mute: %v", err)
	}
}

func (b *Bot) handleAdminUnmute(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	user := sub.Options[0].UserValue(s)
	changed, err := b.settingsService.Unmute(ctx, parseSnowflake(user.ID))
	if err != nil {
		log.Errorf("Error unmuting user %s: %v", user.ID, err)
		common.RespondWithError(s, i, "Something went wrong. Please try again later.")
		return
	}

	if !changed {
		if err := common.RespondWithMessage(s, i, fmt.Sprintf("User %s is not muted.", user.Username), true); err != nil {
			log.Errorf("Error responding to unmute: %v", err)
		}
		return
	}
	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("User %s has been unmuted.", user.Username), true); err != nil {
		log.Errorf("Error responding to unmute: %v", err)
	}
}
