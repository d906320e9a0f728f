package entity

import "time"

// Schedule log actions
const (
	LogActionCreated     = "CREATED"
	LogActionCrewAdded   = "CREW_ADDED"
	LogActionCrewRemoved = "CREW_REMOVED"
	LogActionClosed      = "CLOSED"
	LogActionCleanedUp   = "CLEANED_UP"
)

// ScheduleLog is one audit entry in a schedule's lifecycle. Entries
// outlive the schedule itself so cleanup leaves an audit trail.
type ScheduleLog struct {
	ID         string    `bson:"_id,omitempty"`
	ScheduleID uint      `bson:"scheduleId"`
	GuildID    string    `bson:"guildId"`
	Action     string    `bson:"action"`
	UserID     string    `bson:"userId"`
	Username   string    `bson:"username"`
	Details    string    `bson:"details"`
	Timestamp  time.Time `bson:"timestamp"`
}
