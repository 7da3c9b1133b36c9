package spell

// CreateSpellInput contains everything needed to assemble a spell. Names are
// matched case-insensitively.
type CreateSpellInput struct {
	Effect   string
	Element  string
	Duration string // Optional: defaults to "instant"
	Range    string // Optional: defaults to "self"
	Level    int

	Bloodline       string // Optional: empty means no bloodline
	MagicalAffinity int

	Specialty      string // Optional: empty or "none" means no specialty
	SpecialtyLevel int    // Optional: defaults to 1
	ClassDie       int    // Optional: overrides the specialty's die
}

// Keys understood by CreateCustomSpell
const (
	ParamEffect          = "effect"
	ParamElement         = "element"
	ParamDuration        = "duration"
	ParamRange           = "range"
	ParamLevel           = "level"
	ParamBloodline       = "bloodline"
	ParamMagicalAffinity = "magical_affinity"
	ParamSpecialty       = "specialty"
	ParamSpecialtyLevel  = "specialty_level"
	ParamClassDie        = "class_die"
	ParamRank            = "rank"
	ParamCustomModifiers = "custom_modifiers"
)

const (
	defaultDuration = "instant"
	defaultRange    = "self"
	defaultLevel    = 1
)
