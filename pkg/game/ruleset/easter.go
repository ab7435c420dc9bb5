package ruleset

import (
	"time"
)

// MapTweaks adjust generated maps while an occasion is active.
type MapTweaks struct {
	TemperatureShift float64
	WaterShift       float64
}

// Holiday is an occasion with its own decorative mod.
type Holiday struct {
	Name  string
	Mod   string
	Month time.Month
	Day   int
	// Days is how many days the occasion lasts, starting at Month/Day.
	Days   int
	Tweaks MapTweaks
}

// Holidays lists the occasions with an easter-egg mod.
var Holidays = []Holiday{
	{Name: "New Year", Mod: "NewYear", Month: time.January, Day: 1, Days: 1},
	{Name: "April Fools", Mod: "AprilFools", Month: time.April, Day: 1, Days: 1, Tweaks: MapTweaks{WaterShift: 0.15}},
	{Name: "Samhain", Mod: "Samhain", Month: time.October, Day: 31, Days: 2, Tweaks: MapTweaks{TemperatureShift: -0.1}},
	{Name: "Yuletide", Mod: "Yuletide", Month: time.December, Day: 21, Days: 11, Tweaks: MapTweaks{TemperatureShift: -0.4}},
}

// Active reports whether the holiday covers the calendar day of now.
func (h Holiday) Active(now time.Time) bool {
	start := time.Date(now.Year(), h.Month, h.Day, 0, 0, 0, 0, now.Location())
	// An occasion spanning New Year started last year.
	if start.After(now) {
		start = start.AddDate(-1, 0, 0)
	}
	end := start.AddDate(0, 0, h.Days)
	return !now.Before(start) && now.Before(end)
}

// TodayHoliday returns the occasion active on the day of now, if any.
func TodayHoliday(now time.Time) (Holiday, bool) {
	for _, h := range Holidays {
		if h.Active(now) {
			return h, true
		}
	}
	return Holiday{}, false
}

// TodayEasterEgg returns the mod ruleset of the occasion active on the day
// of now, if there is one and it is loaded.
func (c *Cache) TodayEasterEgg(now time.Time) (*Ruleset, Holiday, bool) {
	h, ok := TodayHoliday(now)
	if !ok {
		return nil, Holiday{}, false
	}
	rs, ok := c.Get(h.Mod)
	if !ok {
		return nil, Holiday{}, false
	}
	return rs, h, true
}
