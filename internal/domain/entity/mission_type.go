package entity

// MissionType identifies the kind of operation a schedule runs.
type MissionType string

const (
	MissionCAS       MissionType = "CAS"       // Close Air Support
	MissionCAP       MissionType = "CAP"       // Combat Air Patrol
	MissionSEAD      MissionType = "SEAD"      // Suppression of Enemy Air Defenses
	MissionStrike    MissionType = "STRIKE"
	MissionTransport MissionType = "TRANSPORT"
	MissionTraining  MissionType = "TRAINING"
	MissionAction    MissionType = "ACTION"
	MissionOutros    MissionType = "OUTROS" // free-form mission with its own description
)

var missionTypes = map[MissionType]struct{}{
	MissionCAS:       {},
	MissionCAP:       {},
	MissionSEAD:      {},
	MissionStrike:    {},
	MissionTransport: {},
	MissionTraining:  {},
	MissionAction:    {},
	MissionOutros:    {},
}

// IsValid reports whether the value belongs to the closed mission set.
func (m MissionType) IsValid() bool {
	_, ok := missionTypes[m]
	return ok
}

func (m MissionType) String() string {
	return string(m)
}

// ActionSubType narrows an ACTION mission.
type ActionSubType string

const (
	ActionCombat         ActionSubType = "COMBAT"
	ActionLogistics      ActionSubType = "LOGISTICS"
	ActionReconnaissance ActionSubType = "RECONNAISSANCE"
	ActionEscort         ActionSubType = "ESCORT"
	ActionPatrol         ActionSubType = "PATROL"
)

var actionSubTypes = map[ActionSubType]struct{}{
	ActionCombat:         {},
	ActionLogistics:      {},
	ActionReconnaissance: {},
	ActionEscort:         {},
	ActionPatrol:         {},
}

// IsValid reports whether the value belongs to the closed sub-type set.
func (a ActionSubType) IsValid() bool {
	_, ok := actionSubTypes[a]
	return ok
}

func (a ActionSubType) String() string {
	return string(a)
}
