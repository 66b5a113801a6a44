package bot

import (
	"context"
	"errors"
	"strconv"

	"frogbot/bot/common"
	"frogbot/events"
	"frogbot/models"
	"frogbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (b *Bot) handleSheetCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "submit":
		b.handleSheetSubmit(s, i, options[0])
	case "cleanup":
		b.handleSheetCleanup(s, i)
	}
}

func (b *Bot) handleSheetSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	ctx := context.Background()

	content := sub.Options[0].StringValue()
	channelID := parseSnowflake(i.ChannelID)
	guildID := parseSnowflake(i.GuildID)
	ownerID := parseSnowflake(i.Member.User.ID)

	if err := b.approvalService.ValidateSubmission(channelID, guildID, content); err != nil {
		switch {
		case errors.Is(err, models.ErrPlaceholderContent):
			b.dmUser(s, i.Member.User.ID, "You must include your *actual* sheet URL in the command, not `(url)`")
			common.RespondWithError(s, i, "Your submission still contains the `(url)` placeholder. Check your DMs.")
		case errors.Is(err, models.ErrNotSubmissionChannel):
			common.RespondWithError(s, i, "This channel is not valid for submitting sheets.")
		default:
			log.Errorf("Error validating sheet submission: %v", err)
			common.RespondWithError(s, i, "Something went wrong. Please try again later.")
		}
		return
	}

	embed := buildSheetEmbed(memberDisplayName(i.Member), i.Member.User.AvatarURL(""), content)
	if err := common.RespondWithEmbed(s, i, embed, false); err != nil {
		log.Errorf("Error posting sheet embed: %v", err)
		return
	}

	// The interaction response is the display message the record tracks
	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		log.Errorf("Error fetching sheet message after submission: %v", err)
		return
	}

	if _, err := b.approvalService.CreateSheet(ctx, parseSnowflake(msg.ID), channelID, ownerID, guildID); err != nil {
		log.Errorf("Error persisting sheet record for message %s: %v", msg.ID, err)
	}
}

func (b *Bot) handleSheetCleanup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	if !b.canManageSheets(s, i.Member) {
		common.RespondWithError(s, i, "You do not have permission to clean up sheets.")
		return
	}

	count, err := b.approvalService.Prune(ctx, &sessionMessageFetcher{session: s})
	if err != nil {
		log.Errorf("Error pruning sheets: %v", err)
		common.RespondWithError(s, i, "Something went wrong pruning sheets. Please try again later.")
		return
	}

	if err := common.RespondWithEmbed(s, i, buildPruneEmbed(count), false); err != nil {
		log.Errorf("Error responding to cleanup: %v", err)
	}
}

// canManageSheets gates the cleanup command to the bot owner and moderators
func (b *Bot) canManageSheets(s *discordgo.Session, m *discordgo.Member) bool {
	if parseSnowflake(m.User.ID) == b.config.OwnerID {
		return true
	}

	roles, err := b.guildRoles(s)
	if err != nil {
		log.Errorf("Error fetching guild roles: %v", err)
		return false
	}
	return holdsAnyRole(m.Roles, roleNamesByID(roles), b.config.BotModRoles)
}

func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	ctx := context.Background()

	if parseSnowflake(r.GuildID) != b.config.PersonalGuildID {
		return
	}
	if r.UserID == s.State.User.ID {
		return
	}

	member := b.resolveMember(s, r.GuildID, r.UserID, r.Member)
	if member == nil {
		return
	}

	roles, err := b.guildRoles(s)
	if err != nil {
		log.Errorf("Error fetching guild roles: %v", err)
		return
	}
	if !holdsAnyRole(member.Roles, roleNamesByID(roles), b.config.ApprovalRoles) {
		return
	}

	sheet, outcome, err := b.approvalService.AddApproval(ctx, parseSnowflake(r.MessageID), parseSnowflake(r.UserID), parseSnowflake(r.GuildID))
	if err != nil {
		log.Errorf("Error recording approval on message %s: %v", r.MessageID, err)
		return
	}

	if outcome == service.OutcomeChanged || outcome == service.OutcomeApproved {
		b.renderSheet(s, sheet)
	}
}

func (b *Bot) handleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	ctx := context.Background()

	if parseSnowflake(r.GuildID) != b.config.PersonalGuildID {
		return
	}
	if r.UserID == s.State.User.ID {
		return
	}

	sheet, outcome, err := b.approvalService.RemoveApproval(ctx, parseSnowflake(r.MessageID), parseSnowflake(r.UserID))
	if err != nil {
		log.Errorf("Error withdrawing approval on message %s: %v", r.MessageID, err)
		return
	}

	if outcome == service.OutcomeChanged {
		b.renderSheet(s, sheet)
	}
}

// resolveMember resolves a guild member, preferring the payload member, then
// the state cache, then the REST API
func (b *Bot) resolveMember(s *discordgo.Session, guildID, userID string, seed *discordgo.Member) *discordgo.Member {
	if seed != nil {
		return seed
	}
	if member, err := s.State.Member(guildID, userID); err == nil {
		return member
	}
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		log.Debugf("Could not resolve member %s in guild %s: %v", userID, guildID, err)
		return nil
	}
	return member
}

// guildRoles returns the personal guild's roles, from the state cache when
// populated
func (b *Bot) guildRoles(s *discordgo.Session) ([]*discordgo.Role, error) {
	guildID := strconv.FormatInt(b.config.PersonalGuildID, 10)
	if guild, err := s.State.Guild(guildID); err == nil && len(guild.Roles) > 0 {
		return guild.Roles, nil
	}
	return s.GuildRoles(guildID)
}

// renderSheet rebuilds the approval fields on a sheet's display message. A
// message that cannot be fetched is left alone until the next cleanup pass.
func (b *Bot) renderSheet(s *discordgo.Session, sheet *models.Sheet) {
	channelID := strconv.FormatInt(sheet.ChannelID, 10)
	messageID := strconv.FormatInt(sheet.MessageID, 10)

	msg, err := s.ChannelMessage(channelID, messageID)
	if err != nil {
		log.Warnf("Could not fetch sheet message %s: %v", messageID, err)
		return
	}
	if len(msg.Embeds) == 0 {
		log.Warnf("Sheet message %s has no embed to update", messageID)
		return
	}

	guildID := strconv.FormatInt(b.config.PersonalGuildID, 10)
	embed := msg.Embeds[0]
	embed.Fields = buildApprovalFields(sheet, func(id int64) (string, bool) {
		member := b.resolveMember(s, guildID, strconv.FormatInt(id, 10), nil)
		if member == nil {
			return "", false
		}
		return memberDisplayName(member), true
	}, b.config.RolesChannelRef, b.config.AvraeChannelRef)

	if _, err := s.ChannelMessageEditEmbed(channelID, messageID, embed); err != nil {
		log.Errorf("Error updating sheet message %s: %v", messageID, err)
	}
}

// onSheetApproved announces the approval in the general channel and swaps the
// owner's roles. Role-change failures are logged per role and never block the
// other change.
func (b *Bot) onSheetApproved(ctx context.Context, event events.Event) {
	e, ok := event.(events.SheetApprovedEvent)
	if !ok {
		return
	}

	s := b.session
	guildID := strconv.FormatInt(e.GuildID, 10)
	ownerID := strconv.FormatInt(e.OwnerID, 10)

	if b.config.GeneralChannelID != 0 {
		description := ""
		msg, err := s.ChannelMessage(strconv.FormatInt(e.ChannelID, 10), strconv.FormatInt(e.MessageID, 10))
		if err == nil && len(msg.Embeds) > 0 {
			description = msg.Embeds[0].Description
		}

		notice := approvalNotice(e.OwnerID, description, b.config.SheetChannelID)
		if _, err := s.ChannelMessageSend(strconv.FormatInt(b.config.GeneralChannelID, 10), notice); err != nil {
			log.Errorf("Error announcing approval for message %d: %v", e.MessageID, err)
		}
	}

	member := b.resolveMember(s, guildID, ownerID, nil)
	if member == nil {
		log.Warnf("Approved sheet owner %s not found in guild", ownerID)
		return
	}

	roles, err := b.guildRoles(s)
	if err != nil {
		log.Errorf("Error fetching guild roles: %v", err)
		return
	}

	changes := planRoleChanges(member.Roles, roles, b.config.PlayerRoleName, b.config.CommonerRoleName)
	for _, result := range applyRoleChanges(s, guildID, ownerID, changes) {
		entry := log.WithFields(log.Fields{
			"role":   result.Role.Name,
			"action": result.Action,
			"member": ownerID,
		})
		if result.Err != nil {
			entry.Warnf("Role change failed: %v", result.Err)
		} else {
			entry.Info("Role change applied")
		}
	}
}

// applyRoleChanges executes planned role changes one by one; a failure on one
// never blocks the others
func applyRoleChanges(s *discordgo.Session, guildID, memberID string, changes []roleChange) []roleChangeResult {
	results := make([]roleChangeResult, 0, len(changes))
	for _, change := range changes {
		var err error
		switch change.Action {
		case roleActionGrant:
			err = s.GuildMemberRoleAdd(guildID, memberID, change.Role.ID)
		case roleActionRevoke:
			err = s.GuildMemberRoleRemove(guildID, memberID, change.Role.ID)
		}
		results = append(results, roleChangeResult{roleChange: change, Err: err})
	}
	return results
}

// dmUser sends a direct message, best effort
func (b *Bot) dmUser(s *discordgo.Session, userID, content string) {
	channel, err := s.UserChannelCreate(userID)
	if err != nil {
		log.Debugf("Could not open DM channel with %s: %v", userID, err)
		return
	}
	if _, err := s.ChannelMessageSend(channel.ID, content); err != nil {
		log.Debugf("Could not DM user %s: %v", userID, err)
	}
}

// sessionMessageFetcher adapts the gateway session to the prune check,
// mapping Discord not-found errors onto the service sentinels
type sessionMessageFetcher struct {
	session *discordgo.Session
}

func (f *sessionMessageFetcher) FetchMessage(channelID, messageID int64) error {
	chID := strconv.FormatInt(channelID, 10)

	if _, err := f.session.Channel(chID); err != nil {
		if isDiscordNotFound(err, discordgo.ErrCodeUnknownChannel) {
			return service.ErrChannelNotFound
		}
		return err
	}

	if _, err := f.session.ChannelMessage(chID, strconv.FormatInt(messageID, 10)); err != nil {
		if isDiscordNotFound(err, discordgo.ErrCodeUnknownMessage) {
			return service.ErrMessageNotFound
		}
		return err
	}
	return nil
}

func isDiscordNotFound(err error, code int) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == code
	}
	return false
}
