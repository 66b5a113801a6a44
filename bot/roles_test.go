package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testGuildRoles = []*discordgo.Role{
	{ID: "1", Name: "DM"},
	{ID: "2", Name: "Lord of the Sheet"},
	{ID: "3", Name: "Player"},
	{ID: "4", Name: "Commoner"},
}

func TestParseSnowflake(t *testing.T) {
	assert.Equal(t, int64(755202524859859004), parseSnowflake("755202524859859004"))
	assert.Equal(t, int64(0), parseSnowflake(""))
	assert.Equal(t, int64(0), parseSnowflake("not-a-number"))
}

func TestMemberDisplayName(t *testing.T) {
	user := &discordgo.User{Username: "froggy", GlobalName: "Froggy"}

	assert.Equal(t, "Nick", memberDisplayName(&discordgo.Member{Nick: "Nick", User: user}))
	assert.Equal(t, "Froggy", memberDisplayName(&discordgo.Member{User: user}))
	assert.Equal(t, "froggy", memberDisplayName(&discordgo.Member{User: &discordgo.User{Username: "froggy"}}))
}

func TestHoldsAnyRole(t *testing.T) {
	rolesByID := roleNamesByID(testGuildRoles)
	approvalRoles := []string{"dm", "lord of the sheet", "approval team"}

	t.Run("matches case-insensitively", func(t *testing.T) {
		assert.True(t, holdsAnyRole([]string{"2"}, rolesByID, approvalRoles))
	})

	t.Run("no matching role", func(t *testing.T) {
		assert.False(t, holdsAnyRole([]string{"3", "4"}, rolesByID, approvalRoles))
	})

	t.Run("unknown role IDs ignored", func(t *testing.T) {
		assert.False(t, holdsAnyRole([]string{"99"}, rolesByID, approvalRoles))
	})

	t.Run("no roles at all", func(t *testing.T) {
		assert.False(t, holdsAnyRole(nil, rolesByID, approvalRoles))
	})
}

func TestPlanRoleChanges(t *testing.T) {
	t.Run("grants player and revokes commoner", func(t *testing.T) {
		changes := planRoleChanges([]string{"4"}, testGuildRoles, "Player", "Commoner")

		require.Len(t, changes, 2)
		assert.Equal(t, roleActionGrant, changes[0].Action)
		assert.Equal(t, "3", changes[0].Role.ID)
		assert.Equal(t, roleActionRevoke, changes[1].Action)
		assert.Equal(t, "4", changes[1].Role.ID)
	})

	t.Run("player already held without commoner", func(t *testing.T) {
		changes := planRoleChanges([]string{"3"}, testGuildRoles, "Player", "Commoner")

		assert.Empty(t, changes)
	})

	t.Run("grant only when commoner absent", func(t *testing.T) {
		changes := planRoleChanges(nil, testGuildRoles, "Player", "Commoner")

		require.Len(t, changes, 1)
		assert.Equal(t, roleActionGrant, changes[0].Action)
	})

	t.Run("roles missing from guild", func(t *testing.T) {
		changes := planRoleChanges([]string{"4"}, []*discordgo.Role{{ID: "4", Name: "Commoner"}}, "Player", "Missing")

		assert.Empty(t, changes)
	})
}
