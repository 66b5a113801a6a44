package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheet_AddApproval(t *testing.T) {
	t.Run("appends a new approver", func(t *testing.T) {
		sheet := NewSheet(100, 200, 300)

		added := sheet.AddApproval(400)

		assert.True(t, added)
		assert.Equal(t, []int64{400}, sheet.Approvals)
	})

	t.Run("rejects self-approval", func(t *testing.T) {
		sheet := NewSheet(100, 200, 300)

		added := sheet.AddApproval(300)

		assert.False(t, added)
		assert.Empty(t, sheet.Approvals)
	})

	t.Run("rejects duplicate approver", func(t *testing.T) {
		sheet := NewSheet(100, 200, 300)

		assert.True(t, sheet.AddApproval(400))
		assert.False(t, sheet.AddApproval(400))
		assert.Equal(t, []int64{400}, sheet.Approvals)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		sheet := NewSheet(100, 200, 300)

		sheet.AddApproval(401)
		sheet.AddApproval(402)
		sheet.AddApproval(403)

		assert.Equal(t, []int64{401, 402, 403}, sheet.Approvals)
	})

	t.Run("owner never appears regardless of call order", func(t *testing.T) {
		sheet := NewSheet(100, 200, 300)

		for _, id := range []int64{401, 300, 402, 300, 401} {
			sheet.AddApproval(id)
		}

		assert.NotContains(t, sheet.Approvals, int64(300))
		assert.Equal(t, []int64{401, 402}, sheet.Approvals)
	})
}

func TestSheet_RemoveApproval(t *testing.T) {
	t.Run("removes an existing approver", func(t *testing.T) {
		sheet := NewSheet(100, 200, 300)
		sheet.AddApproval(401)
		sheet.AddApproval(402)

		removed := sheet.RemoveApproval(401)

		assert.True(t, removed)
		assert.Equal(t, []int64{402}, sheet.Approvals)
	})

	t.Run("no-op when absent", func(t *testing.T) {
		sheet := NewSheet(100, 200, 300)
		sheet.AddApproval(401)

		removed := sheet.RemoveApproval(999)

		assert.False(t, removed)
		assert.Equal(t, []int64{401}, sheet.Approvals)
	})
}

func TestSheet_IsApproved(t *testing.T) {
	sheet := NewSheet(100, 200, 300)
	assert.False(t, sheet.IsApproved())

	sheet.AddApproval(401)
	assert.False(t, sheet.IsApproved())

	sheet.AddApproval(402)
	assert.True(t, sheet.IsApproved())

	sheet.AddApproval(403)
	assert.True(t, sheet.IsApproved())
}

func TestSheet_FieldRoundTrip(t *testing.T) {
	original := NewSheet(100, 200, 300)
	original.AddApproval(401)
	original.AddApproval(402)

	restored, err := NewSheetFromFields(original.Fields())
	require.NoError(t, err)

	assert.Equal(t, original.MessageID, restored.MessageID)
	assert.Equal(t, original.ChannelID, restored.ChannelID)
	assert.Equal(t, original.OwnerID, restored.OwnerID)
	assert.Equal(t, original.Approvals, restored.Approvals)
}

func TestNewSheetFromFields(t *testing.T) {
	validFields := func() map[string]any {
		return map[string]any{
			"message_id": int64(100),
			"channel_id": int64(200),
			"owner_id":   int64(300),
			"approvals":  []int64{401},
		}
	}

	t.Run("valid fields", func(t *testing.T) {
		sheet, err := NewSheetFromFields(validFields())
		require.NoError(t, err)
		assert.Equal(t, int64(100), sheet.MessageID)
		assert.Equal(t, []int64{401}, sheet.Approvals)
	})

	t.Run("accepts boxed approvals", func(t *testing.T) {
		fields := validFields()
		fields["approvals"] = []any{int64(401), int64(402)}

		sheet, err := NewSheetFromFields(fields)
		require.NoError(t, err)
		assert.Equal(t, []int64{401, 402}, sheet.Approvals)
	})

	t.Run("missing field", func(t *testing.T) {
		fields := validFields()
		delete(fields, "owner_id")

		_, err := NewSheetFromFields(fields)
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("mistyped field", func(t *testing.T) {
		fields := validFields()
		fields["channel_id"] = "200"

		_, err := NewSheetFromFields(fields)
		assert.ErrorIs(t, err, ErrMalformedField)
	})

	t.Run("mistyped approvals element", func(t *testing.T) {
		fields := validFields()
		fields["approvals"] = []any{"401"}

		_, err := NewSheetFromFields(fields)
		assert.ErrorIs(t, err, ErrMalformedField)
	})
}
