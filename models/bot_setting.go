package models

import "time"

// Known bot setting keys
const (
	SettingStatus = "status"
)

// BotSetting is a single persisted key/value bot setting
type BotSetting struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// MutedUser is a member barred from using bot commands
type MutedUser struct {
	DiscordID int64     `db:"discord_id"`
	CreatedAt time.Time `db:"created_at"`
}
