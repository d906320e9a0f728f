package entity

import (
	"strings"

	"attendance-service/pkg/apperrors"
)

// User is the identity aggregate for a platform account. The schedule
// list is a back-reference set of schedule ids the user participates
// in, not an ownership relation.
type User struct {
	DiscordID string
	Username  string
	Nickname  string

	schedules []uint
}

// NewUser validates the three identity fields and returns a user with
// no schedule references.
func NewUser(discordID, username, nickname string) (*User, error) {
	if strings.TrimSpace(discordID) == "" {
		return nil, apperrors.Validation("Discord ID is required")
	}
	if strings.TrimSpace(username) == "" {
		return nil, apperrors.Validation("Username is required")
	}
	if strings.TrimSpace(nickname) == "" {
		return nil, apperrors.Validation("Nickname is required")
	}
	return &User{
		DiscordID: strings.TrimSpace(discordID),
		Username:  strings.TrimSpace(username),
		Nickname:  strings.TrimSpace(nickname),
	}, nil
}

// UpdateNickname replaces the display name with a trimmed non-empty value.
func (u *User) UpdateNickname(nickname string) error {
	if strings.TrimSpace(nickname) == "" {
		return apperrors.Validation("Nickname must be a non-empty string")
	}
	u.Nickname = strings.TrimSpace(nickname)
	return nil
}

// Schedules returns a copy of the back-reference set.
func (u *User) Schedules() []uint {
	out := make([]uint, len(u.schedules))
	copy(out, u.schedules)
	return out
}

// HasSchedule reports whether the user references scheduleID.
func (u *User) HasSchedule(scheduleID uint) bool {
	for _, id := range u.schedules {
		if id == scheduleID {
			return true
		}
	}
	return false
}

// AddSchedule records a schedule reference; duplicates are ignored.
func (u *User) AddSchedule(scheduleID uint) {
	if u.HasSchedule(scheduleID) {
		return
	}
	u.schedules = append(u.schedules, scheduleID)
}

// RemoveSchedule drops a schedule reference; absent ids are a no-op.
func (u *User) RemoveSchedule(scheduleID uint) {
	for i, id := range u.schedules {
		if id == scheduleID {
			u.schedules = append(u.schedules[:i], u.schedules[i+1:]...)
			return
		}
	}
}

// UserRecord is the flat persisted shape of a User.
type UserRecord struct {
	DiscordID string `json:"discordId"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
	Schedules []uint `json:"schedules"`
}

// ToRecord flattens the user, copying the schedule references.
func (u *User) ToRecord() UserRecord {
	return UserRecord{
		DiscordID: u.DiscordID,
		Username:  u.Username,
		Nickname:  u.Nickname,
		Schedules: u.Schedules(),
	}
}

// UserFromRecord rebuilds a user from its flat shape.
func UserFromRecord(rec UserRecord) (*User, error) {
	u, err := NewUser(rec.DiscordID, rec.Username, rec.Nickname)
	if err != nil {
		return nil, err
	}
	for _, id := range rec.Schedules {
		u.AddSchedule(id)
	}
	return u, nil
}
