package models

import (
	"fmt"
	"time"
)

// ApprovalThreshold is the number of distinct approvals required before a
// sheet is considered approved.
const ApprovalThreshold = 2

// Sheet represents a character sheet submission pending approval. One record
// exists per submission message; the message ID is the primary key.
type Sheet struct {
	MessageID int64     `db:"message_id"`
	ChannelID int64     `db:"channel_id"`
	OwnerID   int64     `db:"owner_id"`
	Approvals []int64   `db:"approvals"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewSheet creates a sheet with no approvals for a freshly posted submission
func NewSheet(messageID, channelID, ownerID int64) *Sheet {
	return &Sheet{
		MessageID: messageID,
		ChannelID: channelID,
		OwnerID:   ownerID,
		Approvals: []int64{},
	}
}

// NewSheetFromFields builds a sheet from a flat field map, validating that
// every required field is present and correctly typed. Approvals accepts
// either []int64 or []any of int64s.
func NewSheetFromFields(fields map[string]any) (*Sheet, error) {
	messageID, err := int64Field(fields, "message_id")
	if err != nil {
		return nil, err
	}
	channelID, err := int64Field(fields, "channel_id")
	if err != nil {
		return nil, err
	}
	ownerID, err := int64Field(fields, "owner_id")
	if err != nil {
		return nil, err
	}

	raw, ok := fields["approvals"]
	if !ok {
		return nil, fmt.Errorf("sheet field approvals: %w", ErrMissingField)
	}

	var approvals []int64
	switch v := raw.(type) {
	case []int64:
		approvals = append([]int64{}, v...)
	case []any:
		approvals = make([]int64, 0, len(v))
		for _, item := range v {
			id, ok := item.(int64)
			if !ok {
				return nil, fmt.Errorf("sheet field approvals: element %T: %w", item, ErrMalformedField)
			}
			approvals = append(approvals, id)
		}
	default:
		return nil, fmt.Errorf("sheet field approvals: got %T: %w", raw, ErrMalformedField)
	}

	return &Sheet{
		MessageID: messageID,
		ChannelID: channelID,
		OwnerID:   ownerID,
		Approvals: approvals,
	}, nil
}

func int64Field(fields map[string]any, name string) (int64, error) {
	raw, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf("sheet field %s: %w", name, ErrMissingField)
	}
	value, ok := raw.(int64)
	if !ok {
		return 0, fmt.Errorf("sheet field %s: got %T: %w", name, raw, ErrMalformedField)
	}
	return value, nil
}

// Fields returns the flat field representation of the sheet. It is the exact
// inverse of NewSheetFromFields.
func (s *Sheet) Fields() map[string]any {
	return map[string]any{
		"message_id": s.MessageID,
		"channel_id": s.ChannelID,
		"owner_id":   s.OwnerID,
		"approvals":  append([]int64{}, s.Approvals...),
	}
}

// AddApproval appends an approver to the sheet. Self-approvals and duplicate
// approvals are rejected. Returns whether the approver was added.
func (s *Sheet) AddApproval(approverID int64) bool {
	if approverID == s.OwnerID {
		return false
	}
	if s.HasApproval(approverID) {
		return false
	}
	s.Approvals = append(s.Approvals, approverID)
	return true
}

// RemoveApproval removes an approver from the sheet if present. Returns
// whether a removal occurred.
func (s *Sheet) RemoveApproval(memberID int64) bool {
	for i, id := range s.Approvals {
		if id == memberID {
			s.Approvals = append(s.Approvals[:i], s.Approvals[i+1:]...)
			return true
		}
	}
	return false
}

// HasApproval checks whether the given member has already approved the sheet
func (s *Sheet) HasApproval(memberID int64) bool {
	for _, id := range s.Approvals {
		if id == memberID {
			return true
		}
	}
	return false
}

// IsApproved checks if the sheet has reached the approval threshold
func (s *Sheet) IsApproved() bool {
	return len(s.Approvals) >= ApprovalThreshold
}
