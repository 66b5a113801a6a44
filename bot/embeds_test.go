package bot

import (
	"testing"

	"frogbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func displayNames(names map[int64]string) func(int64) (string, bool) {
	return func(id int64) (string, bool) {
		name, ok := names[id]
		return name, ok
	}
}

func TestBuildSheetEmbed(t *testing.T) {
	embed := buildSheetEmbed("Froggy", "https://cdn.example/avatar.png", "Ranger 5 - sheet: https://example.com/sheet")

	assert.Equal(t, "Sheet Approval - Froggy", embed.Title)
	assert.Equal(t, "Ranger 5 - sheet: https://example.com/sheet", embed.Description)
	assert.Equal(t, ColorPrimary, embed.Color)
	require.NotNil(t, embed.Author)
	assert.Equal(t, "Froggy", embed.Author.Name)
	assert.Empty(t, embed.Fields)
}

func TestBuildApprovalFields_OneApprover(t *testing.T) {
	sheet := models.NewSheet(100, 200, 300)
	sheet.AddApproval(401)

	fields := buildApprovalFields(sheet, displayNames(map[int64]string{401: "Reviewer One"}), "#roles", "#avrae")

	require.Len(t, fields, 1)
	assert.Equal(t, "Approval", fields[0].Name)
	assert.Equal(t, "Reviewer One", fields[0].Value)
	assert.True(t, fields[0].Inline)
}

func TestBuildApprovalFields_ApprovedAppendsNotice(t *testing.T) {
	sheet := models.NewSheet(100, 200, 300)
	sheet.AddApproval(401)
	sheet.AddApproval(402)

	fields := buildApprovalFields(sheet, displayNames(map[int64]string{
		401: "Reviewer One",
		402: "Reviewer Two",
	}), "#roles", "#avrae")

	require.Len(t, fields, 3)
	assert.Equal(t, "Approval", fields[0].Name)
	assert.Equal(t, "Approval", fields[1].Name)

	approved := fields[2]
	assert.Equal(t, "Approved!", approved.Name)
	assert.Contains(t, approved.Value, "<@300>")
	assert.Contains(t, approved.Value, "#roles")
	assert.Contains(t, approved.Value, "#avrae")
	assert.False(t, approved.Inline)
}

func TestBuildApprovalFields_UnresolvableApproverDropped(t *testing.T) {
	sheet := models.NewSheet(100, 200, 300)
	sheet.AddApproval(401)
	sheet.AddApproval(402)

	// 402 left the guild: no display field, but the sheet stays approved
	fields := buildApprovalFields(sheet, displayNames(map[int64]string{401: "Reviewer One"}), "#roles", "#avrae")

	require.Len(t, fields, 2)
	assert.Equal(t, "Approval", fields[0].Name)
	assert.Equal(t, "Reviewer One", fields[0].Value)
	assert.Equal(t, "Approved!", fields[1].Name)
}

func TestApprovalNotice(t *testing.T) {
	notice := approvalNotice(300, "Ranger 5", 555)

	assert.Contains(t, notice, "<@300>")
	assert.Contains(t, notice, "```\nRanger 5\n```")
	assert.Contains(t, notice, "<#555>")
}

func TestBuildPruneEmbed_Pluralization(t *testing.T) {
	assert.Equal(t, "Pruned 0 sheets from the database.", buildPruneEmbed(0).Description)
	assert.Equal(t, "Pruned 1 sheet from the database.", buildPruneEmbed(1).Description)
	assert.Equal(t, "Pruned 3 sheets from the database.", buildPruneEmbed(3).Description)
}
