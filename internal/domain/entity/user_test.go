package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance-service/pkg/apperrors"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser(" U1 ", " alpha ", " Alpha ")
	require.NoError(t, err)
	assert.Equal(t, "U1", u.DiscordID)
	assert.Equal(t, "alpha", u.Username)
	assert.Equal(t, "Alpha", u.Nickname)
	assert.Empty(t, u.Schedules())
}

func TestNewUser_Validation(t *testing.T) {
	for _, tt := range []struct {
		name                          string
		discordID, username, nickname string
	}{
		{"missing discord id", "", "alpha", "Alpha"},
		{"missing username", "U1", "  ", "Alpha"},
		{"missing nickname", "U1", "alpha", ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUser(tt.discordID, tt.username, tt.nickname)
			require.Error(t, err)
			assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
		})
	}
}

func TestUser_UpdateNickname(t *testing.T) {
	u, err := NewUser("U1", "alpha", "Alpha")
	require.NoError(t, err)

	require.Error(t, u.UpdateNickname("   "))
	assert.Equal(t, "Alpha", u.Nickname)

	require.NoError(t, u.UpdateNickname("  Alpha Six  "))
	assert.Equal(t, "Alpha Six", u.Nickname)
}

func TestUser_ScheduleBackReferences(t *testing.T) {
	u, err := NewUser("U1", "alpha", "Alpha")
	require.NoError(t, err)

	u.AddSchedule(1)
	u.AddSchedule(2)
	u.AddSchedule(1) // duplicate, ignored
	assert.Equal(t, []uint{1, 2}, u.Schedules())
	assert.True(t, u.HasSchedule(2))

	u.RemoveSchedule(9) // absent, no-op
	u.RemoveSchedule(1)
	assert.Equal(t, []uint{2}, u.Schedules())

	// Returned slice is a copy.
	refs := u.Schedules()
	refs[0] = 99
	assert.Equal(t, []uint{2}, u.Schedules())
}

func TestUser_RecordRoundTrip(t *testing.T) {
	u, err := NewUser("U1", "alpha", "Alpha")
	require.NoError(t, err)
	u.AddSchedule(3)
	u.AddSchedule(5)

	restored, err := UserFromRecord(u.ToRecord())
	require.NoError(t, err)
	assert.Equal(t, u.DiscordID, restored.DiscordID)
	assert.Equal(t, u.Username, restored.Username)
	assert.Equal(t, u.Nickname, restored.Nickname)
	assert.Equal(t, u.Schedules(), restored.Schedules())
}
