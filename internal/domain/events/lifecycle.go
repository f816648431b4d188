package events

import "time"

// Category is the derived display bucket for an event. It is always a
// pure function of the event date and today's date; a client-supplied
// category never survives the next recomputation.
type Category string

const (
	CategoryPast     Category = "past"
	CategoryCurrent  Category = "current"
	CategoryUpcoming Category = "upcoming"
)

const (
	// RetentionDays is how many days past its date an event survives
	// before the sweep purges it.
	RetentionDays = 3

	// CommentWindowDays bounds the comment window on either side of
	// the event date.
	CommentWindowDays = 3
)

// DateOnly truncates a timestamp to its calendar date in UTC. All
// lifecycle comparisons are date-only; time-of-day never matters.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Classify buckets an event by comparing calendar dates.
func Classify(eventDate, today time.Time) Category {
	d := DateOnly(eventDate)
	t := DateOnly(today)
	switch {
	case d.Before(t):
		return CategoryPast
	case d.Equal(t):
		return CategoryCurrent
	default:
		return CategoryUpcoming
	}
}

// RetentionCutoff returns the date strictly before which events are
// purged: an event dated exactly RetentionDays ago is retained.
func RetentionCutoff(today time.Time) time.Time {
	return DateOnly(today).AddDate(0, 0, -RetentionDays)
}

// CommentWindowOpen reports whether today falls within the inclusive
// [eventDate-3d, eventDate+3d] comment window.
func CommentWindowOpen(eventDate, today time.Time) bool {
	d := DateOnly(eventDate)
	t := DateOnly(today)
	open := d.AddDate(0, 0, -CommentWindowDays)
	until := d.AddDate(0, 0, CommentWindowDays)
	return !t.Before(open) && !t.After(until)
}
