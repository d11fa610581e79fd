package services

import (
	"sort"
	"time"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/models"
)

// Analytics helpers derive all statistics from the user's journals at
// read time. Nothing here touches storage or keeps state, so these
// functions are safe to call from any number of requests at once.

const dateLayout = "2006-01-02"

// WeeklyActivity buckets entries created within the trailing 7 days
// into calendar-day counts keyed by ISO date. The window is inclusive
// of now and exclusive at exactly 7×24h prior. Days without entries
// are absent from the map. Timestamps come back from storage in UTC,
// so each one is shifted into now's zone before picking its calendar
// day, the same normalization the streak uses.
func WeeklyActivity(entries []models.Journal, now time.Time) map[string]int {
	cutoff := now.Add(-7 * 24 * time.Hour)
	counts := make(map[string]int)
	for _, e := range entries {
		if e.CreatedAt.After(cutoff) && !e.CreatedAt.After(now) {
			counts[e.CreatedAt.In(now.Location()).Format(dateLayout)]++
		}
	}
	return counts
}

// WeeklySeries zero-fills the weekly activity into a fixed 7-slot
// series for charting. Slot 0 is six days ago, slot 6 is today.
func WeeklySeries(entries []models.Journal, now time.Time) []int {
	counts := WeeklyActivity(entries, now)
	series := make([]int, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, i-6).Format(dateLayout)
		series[i] = counts[day]
	}
	return series
}

// MoodDistribution counts entries per mood across the user's entire
// history.
func MoodDistribution(entries []models.Journal) map[models.Mood]int {
	counts := make(map[models.Mood]int)
	for _, e := range entries {
		counts[e.Mood]++
	}
	return counts
}

// CurrentStreak counts consecutive calendar days with at least one
// entry, walking backward from the most recent entry's day. The
// streak only counts when that day is today or yesterday; a most
// recent entry from two or more days ago yields 0.
func CurrentStreak(entries []models.Journal, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	// Distinct entry days, newest first.
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, e := range entries {
		d := calendarDay(e.CreatedAt.In(now.Location()))
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	today := calendarDay(now)
	if days[0].Before(today.AddDate(0, 0, -1)) {
		return 0
	}

	streak := 1
	prev := days[0]
	for _, d := range days[1:] {
		if !d.Equal(prev.AddDate(0, 0, -1)) {
			break
		}
		streak++
		prev = d
	}
	return streak
}

// Achievement is a derived badge; never stored, recomputed on demand.
type Achievement struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// achievementRules is the ordered threshold table. Rules are
// independent: every qualifying row unlocks.
var achievementRules = []struct {
	Name      string
	Icon      string
	Qualifies func(total, streak int, moods map[models.Mood]int) bool
}{
	{"First Entry", "🌱", func(total, _ int, _ map[models.Mood]int) bool { return total >= 1 }},
	{"Getting Started", "✍️", func(total, _ int, _ map[models.Mood]int) bool { return total >= 5 }},
	{"Dedicated Writer", "📖", func(total, _ int, _ map[models.Mood]int) bool { return total >= 10 }},
	{"Journal Master", "🏆", func(total, _ int, _ map[models.Mood]int) bool { return total >= 30 }},
	{"3 Day Streak", "🔥", func(_, streak int, _ map[models.Mood]int) bool { return streak >= 3 }},
	{"Week Warrior", "⚡", func(_, streak int, _ map[models.Mood]int) bool { return streak >= 7 }},
	{"Monthly Legend", "🌟", func(_, streak int, _ map[models.Mood]int) bool { return streak >= 30 }},
	{"Emotion Explorer", "🎭", func(_, _ int, moods map[models.Mood]int) bool {
		for _, m := range []models.Mood{models.MoodHappy, models.MoodSad, models.MoodExcited, models.MoodCalm} {
			if moods[m] == 0 {
				return false
			}
		}
		return true
	}},
}

// Achievements evaluates the rule table against the user's journals.
func Achievements(entries []models.Journal, now time.Time) []Achievement {
	total := len(entries)
	streak := CurrentStreak(entries, now)
	moods := MoodDistribution(entries)

	unlocked := make([]Achievement, 0, len(achievementRules))
	for _, rule := range achievementRules {
		if rule.Qualifies(total, streak, moods) {
			unlocked = append(unlocked, Achievement{Name: rule.Name, Icon: rule.Icon})
		}
	}
	return unlocked
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
