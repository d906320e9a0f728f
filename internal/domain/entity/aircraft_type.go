package entity

// AircraftType identifies the airframe assigned to a schedule.
type AircraftType string

const (
	AircraftF18     AircraftType = "F18"
	AircraftF16     AircraftType = "F16"
	AircraftA10     AircraftType = "A10"
	AircraftAV8B    AircraftType = "AV8B"
	AircraftUH1H    AircraftType = "UH1H"
	AircraftUH60L   AircraftType = "UH60L"
	AircraftAH64D   AircraftType = "AH64D"
	AircraftCH47F   AircraftType = "CH47F"
	AircraftSA342   AircraftType = "SA342"
	AircraftOH58D   AircraftType = "OH58D"
	AircraftMI8MTV2 AircraftType = "MI8MTV2"
	AircraftMI24P   AircraftType = "MI24P"
	AircraftKA50    AircraftType = "KA50"
	AircraftKA503   AircraftType = "KA503"
	AircraftM2000C  AircraftType = "M2000C"
	AircraftF14     AircraftType = "F14"
	AircraftF5E     AircraftType = "F5E"
)

var aircraftTypes = map[AircraftType]struct{}{
	AircraftF18:     {},
	AircraftF16:     {},
	AircraftA10:     {},
	AircraftAV8B:    {},
	AircraftUH1H:    {},
	AircraftUH60L:   {},
	AircraftAH64D:   {},
	AircraftCH47F:   {},
	AircraftSA342:   {},
	AircraftOH58D:   {},
	AircraftMI8MTV2: {},
	AircraftMI24P:   {},
	AircraftKA50:    {},
	AircraftKA503:   {},
	AircraftM2000C:  {},
	AircraftF14:     {},
	AircraftF5E:     {},
}

// IsValid reports whether the value belongs to the closed aircraft set.
func (a AircraftType) IsValid() bool {
	_, ok := aircraftTypes[a]
	return ok
}

func (a AircraftType) String() string {
	return string(a)
}
