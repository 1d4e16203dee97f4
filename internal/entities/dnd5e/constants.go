package dnd5e

// EntityTypeCharacter is the rpg-toolkit entity type for tracked characters
const EntityTypeCharacter = "character"

// RecoveryType describes which rest restores a resource or spell slot
type RecoveryType string

// Recovery types
const (
	RecoveryShort RecoveryType = "short"
	RecoveryLong  RecoveryType = "long"
	RecoveryNone  RecoveryType = "none"
)

// IsValid reports whether r is a known recovery type
func (r RecoveryType) IsValid() bool {
	switch r {
	case RecoveryShort, RecoveryLong, RecoveryNone:
		return true
	default:
		return false
	}
}

// DurationType is the unit of a status' remaining duration
type DurationType string

// Duration types
const (
	DurationRounds  DurationType = "rounds"
	DurationMinutes DurationType = "minutes"
	DurationRest    DurationType = "rest"
)

// IsValid reports whether d is a known duration type
func (d DurationType) IsValid() bool {
	switch d {
	case DurationRounds, DurationMinutes, DurationRest:
		return true
	default:
		return false
	}
}

// Spell and level limits
const (
	MinSpellLevel     = 1
	MaxSpellLevel     = 9
	MaxCharacterLevel = 20
	MaxPactSlotLevel  = 5
	MaxDeathSaves     = 3
)

// Standard condition names
const (
	ConditionBlinded       = "Blinded"
	ConditionCharmed       = "Charmed"
	ConditionDeafened      = "Deafened"
	ConditionFrightened    = "Frightened"
	ConditionGrappled      = "Grappled"
	ConditionIncapacitated = "Incapacitated"
	ConditionInvisible     = "Invisible"
	ConditionParalyzed     = "Paralyzed"
	ConditionPetrified     = "Petrified"
	ConditionPoisoned      = "Poisoned"
	ConditionProne         = "Prone"
	ConditionRestrained    = "Restrained"
	ConditionStunned       = "Stunned"
	ConditionUnconscious   = "Unconscious"
)

// StandardConditions lists the quick-toggle conditions in display order
var StandardConditions = []string{
	ConditionBlinded,
	ConditionCharmed,
	ConditionDeafened,
	ConditionFrightened,
	ConditionGrappled,
	ConditionIncapacitated,
	ConditionInvisible,
	ConditionParalyzed,
	ConditionPetrified,
	ConditionPoisoned,
	ConditionProne,
	ConditionRestrained,
	ConditionStunned,
	ConditionUnconscious,
}

// IsStandardCondition reports whether name is one of StandardConditions
func IsStandardCondition(name string) bool {
	for _, c := range StandardConditions {
		if c == name {
			return true
		}
	}
	return false
}
