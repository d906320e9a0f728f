package templates

import (
	"fmt"
	"time"

	"attendance-service/internal/domain/entity"
)

// MissionSummary renders the mission line for a schedule, including the
// type-specific payload when there is one.
func MissionSummary(s *entity.Schedule) string {
	switch d := s.Details.(type) {
	case entity.ActionMission:
		if d.SubType != "" {
			return fmt.Sprintf("%s (%s) - %s", s.Mission, d.SubType, d.Option)
		}
		return fmt.Sprintf("%s - %s", s.Mission, d.Option)
	case entity.OtherMission:
		return fmt.Sprintf("%s - %s", s.Mission, d.Description)
	default:
		return s.Mission.String()
	}
}

// ScheduleCreated renders the announcement for a freshly opened schedule.
func ScheduleCreated(s *entity.Schedule) string {
	return fmt.Sprintf("🚁 **%s** is now boarding | %s | %s | opened by %s",
		s.Title, s.Aircraft, MissionSummary(s), s.CreatedByUsername)
}

// CrewJoined renders the announcement for a boarded crew member.
func CrewJoined(s *entity.Schedule, nickname string) string {
	return fmt.Sprintf("✅ %s boarded **%s** (%d crew)", nickname, s.Title, len(s.CrewMembers()))
}

// CrewLeft renders the announcement for a removed crew member.
func CrewLeft(s *entity.Schedule, nickname string) string {
	return fmt.Sprintf("👋 %s left **%s** (%d crew)", nickname, s.Title, len(s.CrewMembers()))
}

// ScheduleClosed renders the announcement for a closed schedule with
// its total duration.
func ScheduleClosed(s *entity.Schedule) string {
	duration := "unknown duration"
	if s.EndTime != nil {
		duration = s.EndTime.Sub(s.StartTime).Round(time.Minute).String()
	}
	return fmt.Sprintf("🛬 **%s** closed after %s with %d crew members",
		s.Title, duration, len(s.CrewMembers()))
}
