package testutil

import (
	"frogbot/models"
)

// CreateTestSheet creates a pending sheet with no approvals
func CreateTestSheet(messageID, channelID, ownerID int64) *models.Sheet {
	return models.NewSheet(messageID, channelID, ownerID)
}

// CreateTestSheetWithApprovals creates a sheet with the given approvers
func CreateTestSheetWithApprovals(messageID, channelID, ownerID int64, approvers ...int64) *models.Sheet {
	sheet := models.NewSheet(messageID, channelID, ownerID)
	for _, approver := range approvers {
		sheet.AddApproval(approver)
	}
	return sheet
}
