package entity

import (
	"strings"
	"time"

	"attendance-service/pkg/apperrors"
)

// CrewMember is a snapshot of a user taken when they board a schedule.
// Later nickname changes on the User do not rewrite roster entries.
type CrewMember struct {
	DiscordID string `json:"discordId"`
	Username  string `json:"username"`
	Nickname  string `json:"nickname"`
}

// MissionDetails is the mission-specific payload. Exactly one concrete
// type matches each mission category, so a schedule can never hold an
// action option and an OUTROS description at the same time.
type MissionDetails interface {
	missionDetails()
}

// StandardMission covers CAS, CAP, SEAD, STRIKE, TRANSPORT and TRAINING
// missions, which carry no extra payload.
type StandardMission struct{}

// ActionMission is the payload of an ACTION mission.
type ActionMission struct {
	SubType ActionSubType
	Option  string
}

// OtherMission is the payload of an OUTROS mission.
type OtherMission struct {
	Description string
}

func (StandardMission) missionDetails() {}
func (ActionMission) missionDetails()   {}
func (OtherMission) missionDetails()    {}

// Schedule is the mission aggregate: lifecycle, crew roster and
// mission payload. The id and the roster are owned exclusively by the
// entity; everything handed out is a copy.
type Schedule struct {
	GuildID           string
	Title             string
	Aircraft          AircraftType
	Mission           MissionType
	Details           MissionDetails
	StartTime         time.Time
	EndTime           *time.Time
	CreatedByID       string
	CreatedByUsername string
	Active            bool

	id   uint
	crew []CrewMember
}

// NewScheduleParams carries the construction input for a Schedule.
type NewScheduleParams struct {
	GuildID           string
	Title             string
	Aircraft          AircraftType
	Mission           MissionType
	ActionSubType     ActionSubType
	ActionOption      string
	OutrosDescription string
	CreatedByID       string
	CreatedByUsername string
}

// NewSchedule validates params and returns an active schedule with an
// empty crew. Validation failures happen before any field is set.
func NewSchedule(p NewScheduleParams) (*Schedule, error) {
	if strings.TrimSpace(p.GuildID) == "" {
		return nil, apperrors.Validation("Guild ID is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, apperrors.Validation("Title is required")
	}
	if !p.Aircraft.IsValid() {
		return nil, apperrors.Validationf("Invalid aircraft type: %s", p.Aircraft)
	}
	if !p.Mission.IsValid() {
		return nil, apperrors.Validationf("Invalid mission type: %s", p.Mission)
	}
	if strings.TrimSpace(p.CreatedByID) == "" {
		return nil, apperrors.Validation("Created by ID is required")
	}
	if strings.TrimSpace(p.CreatedByUsername) == "" {
		return nil, apperrors.Validation("Created by username is required")
	}

	details, err := missionDetailsFor(p)
	if err != nil {
		return nil, err
	}

	return &Schedule{
		GuildID:           strings.TrimSpace(p.GuildID),
		Title:             strings.TrimSpace(p.Title),
		Aircraft:          p.Aircraft,
		Mission:           p.Mission,
		Details:           details,
		StartTime:         time.Now(),
		CreatedByID:       strings.TrimSpace(p.CreatedByID),
		CreatedByUsername: strings.TrimSpace(p.CreatedByUsername),
		Active:            true,
	}, nil
}

func missionDetailsFor(p NewScheduleParams) (MissionDetails, error) {
	switch p.Mission {
	case MissionAction:
		if p.ActionSubType != "" && !p.ActionSubType.IsValid() {
			return nil, apperrors.Validationf("Invalid action sub type: %s", p.ActionSubType)
		}
		return ActionMission{SubType: p.ActionSubType, Option: strings.TrimSpace(p.ActionOption)}, nil
	case MissionOutros:
		desc := strings.TrimSpace(p.OutrosDescription)
		if desc == "" {
			return nil, apperrors.Validation("Description is required for OUTROS missions")
		}
		return OtherMission{Description: desc}, nil
	default:
		return StandardMission{}, nil
	}
}

// ID returns the persistence identity, zero until assigned.
func (s *Schedule) ID() uint {
	return s.id
}

// SetID assigns the persistence identity exactly once.
func (s *Schedule) SetID(id uint) error {
	if s.id != 0 {
		return apperrors.Validation("Schedule ID cannot be changed once set")
	}
	if id == 0 {
		return apperrors.Validation("Schedule ID must be a positive integer")
	}
	s.id = id
	return nil
}

// IsCreator reports whether discordID created this schedule.
func (s *Schedule) IsCreator(discordID string) bool {
	return s.CreatedByID == discordID
}

// HasCrewMember reports whether discordID is on the roster.
func (s *Schedule) HasCrewMember(discordID string) bool {
	for _, m := range s.crew {
		if m.DiscordID == discordID {
			return true
		}
	}
	return false
}

// CrewMembers returns a copy of the roster.
func (s *Schedule) CrewMembers() []CrewMember {
	out := make([]CrewMember, len(s.crew))
	copy(out, s.crew)
	return out
}

// AddCrewMember boards a user. The creator is permanently excluded and
// duplicates are rejected.
func (s *Schedule) AddCrewMember(u *User) error {
	if !s.Active {
		return apperrors.ErrInactiveSchedule
	}
	if s.IsCreator(u.DiscordID) {
		return apperrors.ErrCreatorCannotBeCrew
	}
	if s.HasCrewMember(u.DiscordID) {
		return apperrors.ErrAlreadyInCrew
	}
	s.crew = append(s.crew, CrewMember{
		DiscordID: u.DiscordID,
		Username:  u.Username,
		Nickname:  u.Nickname,
	})
	return nil
}

// RemoveCrewMember takes a user off the roster.
func (s *Schedule) RemoveCrewMember(discordID string) error {
	if !s.Active {
		return apperrors.ErrInactiveSchedule
	}
	if s.IsCreator(discordID) {
		return apperrors.ErrCreatorCannotLeave
	}
	for i, m := range s.crew {
		if m.DiscordID == discordID {
			s.crew = append(s.crew[:i], s.crew[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotInCrew
}

// Close ends the schedule. closedByID is recorded by callers for audit
// purposes; any user may close a schedule.
func (s *Schedule) Close(closedByID string) error {
	if !s.Active {
		return apperrors.ErrScheduleClosed
	}
	now := time.Now()
	s.Active = false
	s.EndTime = &now
	return nil
}

// ActionSubType returns the sub-type of an ACTION mission, empty otherwise.
func (s *Schedule) ActionSubType() ActionSubType {
	if d, ok := s.Details.(ActionMission); ok {
		return d.SubType
	}
	return ""
}

// ActionOption returns the option of an ACTION mission, empty otherwise.
func (s *Schedule) ActionOption() string {
	if d, ok := s.Details.(ActionMission); ok {
		return d.Option
	}
	return ""
}

// OutrosDescription returns the description of an OUTROS mission, empty
// otherwise.
func (s *Schedule) OutrosDescription() string {
	if d, ok := s.Details.(OtherMission); ok {
		return d.Description
	}
	return ""
}

// ScheduleRecord is the flat persisted shape of a Schedule. Timestamps
// are RFC 3339 text.
type ScheduleRecord struct {
	ID                uint         `json:"id"`
	GuildID           string       `json:"guildId"`
	Title             string       `json:"title"`
	AircraftType      string       `json:"aircraftType"`
	MissionType       string       `json:"missionType"`
	ActionSubType     string       `json:"actionSubType,omitempty"`
	ActionOption      string       `json:"actionOption,omitempty"`
	OutrosDescription string       `json:"outrosDescription,omitempty"`
	StartTime         string       `json:"startTime"`
	EndTime           *string      `json:"endTime"`
	CreatedByID       string       `json:"createdById"`
	CreatedByUsername string       `json:"createdByUsername"`
	Active            bool         `json:"active"`
	CrewMembers       []CrewMember `json:"crewMembers"`
}

// ToRecord flattens the schedule, copying the roster.
func (s *Schedule) ToRecord() ScheduleRecord {
	var endTime *string
	if s.EndTime != nil {
		t := s.EndTime.Format(time.RFC3339Nano)
		endTime = &t
	}
	return ScheduleRecord{
		ID:                s.id,
		GuildID:           s.GuildID,
		Title:             s.Title,
		AircraftType:      string(s.Aircraft),
		MissionType:       string(s.Mission),
		ActionSubType:     string(s.ActionSubType()),
		ActionOption:      s.ActionOption(),
		OutrosDescription: s.OutrosDescription(),
		StartTime:         s.StartTime.Format(time.RFC3339Nano),
		EndTime:           endTime,
		CreatedByID:       s.CreatedByID,
		CreatedByUsername: s.CreatedByUsername,
		Active:            s.Active,
		CrewMembers:       s.CrewMembers(),
	}
}

// ScheduleFromRecord rebuilds a schedule from its flat shape, running
// full construction validation before restoring lifecycle state.
func ScheduleFromRecord(rec ScheduleRecord) (*Schedule, error) {
	s, err := NewSchedule(NewScheduleParams{
		GuildID:           rec.GuildID,
		Title:             rec.Title,
		Aircraft:          AircraftType(rec.AircraftType),
		Mission:           MissionType(rec.MissionType),
		ActionSubType:     ActionSubType(rec.ActionSubType),
		ActionOption:      rec.ActionOption,
		OutrosDescription: rec.OutrosDescription,
		CreatedByID:       rec.CreatedByID,
		CreatedByUsername: rec.CreatedByUsername,
	})
	if err != nil {
		return nil, err
	}

	if rec.ID != 0 {
		if err := s.SetID(rec.ID); err != nil {
			return nil, err
		}
	}

	startTime, err := time.Parse(time.RFC3339Nano, rec.StartTime)
	if err != nil {
		return nil, apperrors.Validationf("Invalid start time: %s", rec.StartTime)
	}
	s.StartTime = startTime

	if rec.EndTime != nil {
		endTime, err := time.Parse(time.RFC3339Nano, *rec.EndTime)
		if err != nil {
			return nil, apperrors.Validationf("Invalid end time: %s", *rec.EndTime)
		}
		s.EndTime = &endTime
	}

	s.Active = rec.Active
	s.crew = append([]CrewMember(nil), rec.CrewMembers...)
	return s, nil
}
