package spell

// Duration is a canonical spell duration key
type Duration string

const (
	DurationInstant   Duration = "instant"
	Duration1Minute   Duration = "1_minute"
	Duration5Minute   Duration = "5_minute"
	Duration10Minute  Duration = "10_minute"
	Duration30Minute  Duration = "30_minute"
	Duration1Hour     Duration = "1_hour"
	Duration5Hour     Duration = "5_hour"
	Duration24Hour    Duration = "24_hour"
	Duration1Week     Duration = "1_week"
	DurationPermanent Duration = "permanent"
)

// Unbounded marks permanent durations and sight ranges, which are never scaled
const Unbounded = -1

// durationRounds are six-second rounds
var durationRounds = map[Duration]int{
	DurationInstant:   0,
	Duration1Minute:   10,
	Duration5Minute:   50,
	Duration10Minute:  100,
	Duration30Minute:  300,
	Duration1Hour:     600,
	Duration5Hour:     3000,
	Duration24Hour:    14400,
	Duration1Week:     100800,
	DurationPermanent: Unbounded,
}

// BaseRounds returns the canonical length in rounds, false for free-form durations
func (d Duration) BaseRounds() (int, bool) {
	r, ok := durationRounds[d]
	return r, ok
}

// Range is a canonical spell range key
type Range string

const (
	RangeSelf  Range = "self"
	RangeTouch Range = "touch"
	Range5Ft   Range = "5ft"
	Range30Ft  Range = "30ft"
	Range100Ft Range = "100ft"
	RangeSight Range = "sight"
)

var rangeFeet = map[Range]int{
	RangeSelf:  0,
	RangeTouch: 0,
	Range5Ft:   5,
	Range30Ft:  30,
	Range100Ft: 100,
	RangeSight: Unbounded,
}

// BaseFeet returns the canonical reach in feet, false for free-form ranges
func (r Range) BaseFeet() (int, bool) {
	f, ok := rangeFeet[r]
	return f, ok
}
