package bot

import (
	"fmt"

	"frogbot/bot/common"
	"frogbot/models"

	"github.com/bwmarrin/discordgo"
)

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
)

// buildSheetEmbed creates the display message embed for a new submission. The
// approval fields are added later as reviewers react.
func buildSheetEmbed(authorName, authorIcon, content string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Sheet Approval - %s", authorName),
		Description: content,
		Color:       ColorPrimary,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    authorName,
			IconURL: authorIcon,
		},
	}
}

// buildApprovalFields rebuilds the embed fields for a sheet from scratch: one
// field per approver whose identity still resolves, plus the approval notice
// once the threshold is reached. Approvers that no longer resolve are dropped
// from display but still count toward the threshold.
func buildApprovalFields(sheet *models.Sheet, displayName func(int64) (string, bool), rolesRef, avraeRef string) []*discordgo.MessageEmbedField {
	var fields []*discordgo.MessageEmbedField

	for _, approverID := range sheet.Approvals {
		name, ok := displayName(approverID)
		if !ok {
			continue
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Approval",
			Value:  name,
			Inline: true,
		})
	}

	if sheet.IsApproved() {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Approved!",
			Value: fmt.Sprintf("<@%d>, Your character has been approved! Go to %s and grab your player roles, "+
				"and then go to %s and do the pinned commands for your sheet!",
				sheet.OwnerID, rolesRef, avraeRef),
			Inline: false,
		})
	}

	return fields
}

// approvalNotice builds the general-channel announcement for an approved sheet
func approvalNotice(ownerID int64, description string, sheetChannelID int64) string {
	return fmt.Sprintf("<@%d>, your character with the following content has been approved:\n"+
		"```\n%s\n```\n"+
		"Check your submission in <#%d> for details on what to do next.",
		ownerID, description, sheetChannelID)
}

// buildPruneEmbed summarizes a cleanup pass
func buildPruneEmbed(count int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Sheet Cleanup",
		Description: fmt.Sprintf("Pruned %d %s from the database.", count, common.Pluralize(count, "sheet")),
		Color:       ColorPrimary,
	}
}
