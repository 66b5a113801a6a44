package bot

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// parseSnowflake converts a Discord string ID to int64, 0 when malformed
func parseSnowflake(id string) int64 {
	v, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// memberDisplayName returns the name a member shows as in the guild
func memberDisplayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User.GlobalName != "" {
		return m.User.GlobalName
	}
	return m.User.Username
}

// roleNamesByID builds a role ID to role name lookup for a guild
func roleNamesByID(roles []*discordgo.Role) map[string]string {
	names := make(map[string]string, len(roles))
	for _, role := range roles {
		names[role.ID] = role.Name
	}
	return names
}

// holdsAnyRole reports whether any of the member's role IDs maps to one of
// the wanted role names. Comparison is case-insensitive.
func holdsAnyRole(memberRoleIDs []string, rolesByID map[string]string, wanted []string) bool {
	for _, roleID := range memberRoleIDs {
		name, ok := rolesByID[roleID]
		if !ok {
			continue
		}
		for _, want := range wanted {
			if strings.EqualFold(name, want) {
				return true
			}
		}
	}
	return false
}

// findRoleByName returns the first guild role with the given name, nil when
// no such role exists
func findRoleByName(roles []*discordgo.Role, name string) *discordgo.Role {
	for _, role := range roles {
		if role.Name == name {
			return role
		}
	}
	return nil
}

// Role change actions
const (
	roleActionGrant  = "grant"
	roleActionRevoke = "revoke"
)

// roleChange is one planned best-effort role mutation
type roleChange struct {
	Action string
	Role   *discordgo.Role
}

// roleChangeResult records the outcome of an attempted role change. Failures
// are reported, never propagated.
type roleChangeResult struct {
	roleChange
	Err error
}

// planRoleChanges determines the role swap for an approved sheet's owner:
// grant the player role unless already held, revoke the commoner role if
// present. A role missing from the guild is not an error, just nothing to do.
func planRoleChanges(memberRoleIDs []string, guildRoles []*discordgo.Role, playerName, commonerName string) []roleChange {
	held := make(map[string]bool, len(memberRoleIDs))
	for _, roleID := range memberRoleIDs {
		held[roleID] = true
	}

	var changes []roleChange
	if player := findRoleByName(guildRoles, playerName); player != nil && !held[player.ID] {
		changes = append(changes, roleChange{Action: roleActionGrant, Role: player})
	}
	if commoner := findRoleByName(guildRoles, commonerName); commoner != nil && held[commoner.ID] {
		changes = append(changes, roleChange{Action: roleActionRevoke, Role: commoner})
	}
	return changes
}
