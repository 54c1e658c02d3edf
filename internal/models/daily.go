package models

import "time"

// Weekdays is a weekly recurrence mask, one flag per weekday.
type Weekdays struct {
	Mon bool `json:"mon"`
	Tue bool `json:"tue"`
	Wed bool `json:"wed"`
	Thu bool `json:"thu"`
	Fri bool `json:"fri"`
	Sat bool `json:"sat"`
	Sun bool `json:"sun"`
}

// On reports whether the mask includes now's weekday.
func (w Weekdays) On(now time.Time) bool {
	switch now.Weekday() {
	case time.Monday:
		return w.Mon
	case time.Tuesday:
		return w.Tue
	case time.Wednesday:
		return w.Wed
	case time.Thursday:
		return w.Thu
	case time.Friday:
		return w.Fri
	case time.Saturday:
		return w.Sat
	default:
		return w.Sun
	}
}

// EveryDay returns a mask with every weekday enabled.
func EveryDay() Weekdays {
	return Weekdays{Mon: true, Tue: true, Wed: true, Thu: true, Fri: true, Sat: true, Sun: true}
}

// Daily represents a recurring task scheduled by a weekday mask.
// CompletedOn holds the calendar day of the most recent completion; crossing
// the day boundary resets the derived completion flag without a background job.
type Daily struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Notes       string    `json:"notes"`
	Difficulty  string    `json:"difficulty"`
	Days        Weekdays  `json:"days"`
	CompletedOn string    `json:"completedOn,omitempty"`
	Streak      int       `json:"streak"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompletedToday reports whether the daily was completed on now's calendar day.
func (d *Daily) CompletedToday(now time.Time) bool {
	return d.CompletedOn != "" && d.CompletedOn == now.Format(DateLayout)
}

// DueToday reports whether the daily is scheduled for now's weekday.
func (d *Daily) DueToday(now time.Time) bool {
	return d.Days.On(now)
}
