package config

// input documents use the units of field data sheets
const (
	secPerDay  = 86400.
	secPerHour = 3600.
	secPerMin  = 60.
)

func mPerDayToMPerSec(v float64) float64 { return v / secPerDay }
func cubicMPerHourToPerSec(v float64) float64 { return v / secPerHour }
func minToSec(v float64) float64 { return v * secPerMin }
