package overlay

import "time"

var breakMessages = []string{
	"Your eyes deserve this break!",
	"Keep up the good habit!",
	"20 seconds to refresh your vision",
	"Protect your eyes, they're irreplaceable",
	"A small break for long-term benefits",
}

var workMessages = []string{
	"Keep up the good work!",
	"Almost there!",
	"Stay focused!",
	"You're doing great!",
	"Keep going!",
}

// BreakMessage picks the encouragement shown on the break overlay.
func BreakMessage(now time.Time) string {
	return pick(breakMessages, now)
}

// WorkMessage picks the encouragement shown while working.
func WorkMessage(now time.Time) string {
	return pick(workMessages, now)
}

func pick(messages []string, now time.Time) string {
	count := int64(len(messages))
	index := now.Unix() % count
	if index < 0 {
		index += count
	}
	return messages[index]
}
