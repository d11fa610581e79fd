package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Dakshan-Kumar-A/AI-Assisted-Daily-Journal/internal/models"
)

// entriesOnDays builds one entry per day offset (0 = today, -1 =
// yesterday, ...) relative to now, at midday to stay clear of
// midnight boundaries.
func entriesOnDays(now time.Time, offsets ...int) []models.Journal {
	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())
	entries := make([]models.Journal, 0, len(offsets))
	for _, off := range offsets {
		entries = append(entries, models.Journal{
			Title:     "entry",
			Content:   "content",
			Mood:      models.MoodNeutral,
			CreatedAt: noon.AddDate(0, 0, off),
		})
	}
	return entries
}

func testNow() time.Time {
	return time.Date(2026, time.August, 30, 15, 0, 0, 0, time.Local)
}

func TestCurrentStreak(t *testing.T) {
	now := testNow()

	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"three consecutive days ending today", []int{0, -1, -2}, 3},
		{"gap after today", []int{0, -3}, 1},
		{"only an old entry", []int{-3}, 0},
		{"no entries", nil, 0},
		{"streak ending yesterday still counts", []int{-1, -2}, 2},
		{"multiple entries per day counted once", []int{0, 0, -1, -1, -2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStreak(entriesOnDays(now, tt.offsets...), now))
		})
	}
}

func TestWeeklySeries(t *testing.T) {
	now := testNow()
	entries := entriesOnDays(now, -1, -1, -3)

	series := WeeklySeries(entries, now)
	assert.Len(t, series, 7)

	// Slot 6 is today, slot 5 yesterday, slot 3 three days ago.
	want := []int{0, 0, 0, 1, 0, 2, 0}
	assert.Equal(t, want, series)
}

func TestWeeklyActivityOmitsEmptyDaysAndOldEntries(t *testing.T) {
	now := testNow()
	entries := entriesOnDays(now, 0, -2, -10)

	activity := WeeklyActivity(entries, now)
	assert.Len(t, activity, 2)
	assert.Equal(t, 1, activity[now.Format("2006-01-02")])
	assert.Equal(t, 1, activity[now.AddDate(0, 0, -2).Format("2006-01-02")])
}

func TestWeeklyActivityBoundaryIsExclusiveAtSevenDays(t *testing.T) {
	now := testNow()
	entries := []models.Journal{
		// exactly on the boundary: out
		{CreatedAt: now.Add(-7 * 24 * time.Hour)},
		// just inside: in
		{CreatedAt: now.Add(-7*24*time.Hour + time.Minute)},
	}

	activity := WeeklyActivity(entries, now)
	assert.Len(t, activity, 1)
}

func TestWeeklyActivityNormalizesStoredUTCTimestamps(t *testing.T) {
	// Mongo round-trips created_at in UTC. An entry written at 02:00
	// local on a UTC+9 server is 17:00 UTC the previous day; it must
	// still bucket into the local calendar day, like the streak does.
	zone := time.FixedZone("UTC+9", 9*3600)
	now := time.Date(2026, time.August, 30, 15, 0, 0, 0, zone)
	entry := models.Journal{
		CreatedAt: time.Date(2026, time.August, 30, 2, 0, 0, 0, zone).UTC(),
	}
	entries := []models.Journal{entry}

	activity := WeeklyActivity(entries, now)
	assert.Equal(t, 1, activity["2026-08-30"])

	series := WeeklySeries(entries, now)
	assert.Equal(t, 1, series[6])

	assert.Equal(t, 1, CurrentStreak(entries, now))
}

func TestMoodDistribution(t *testing.T) {
	entries := []models.Journal{
		{Mood: models.MoodHappy},
		{Mood: models.MoodHappy},
		{Mood: models.MoodSad},
	}

	counts := MoodDistribution(entries)
	assert.Equal(t, 2, counts[models.MoodHappy])
	assert.Equal(t, 1, counts[models.MoodSad])
	assert.Empty(t, MoodDistribution(nil))
}

func achievementNames(list []Achievement) []string {
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name)
	}
	return names
}

func TestAchievementsCountThresholds(t *testing.T) {
	now := testNow()

	// Five entries spread out with streak 2.
	entries := entriesOnDays(now, 0, -1, -5, -8, -12)
	names := achievementNames(Achievements(entries, now))
	assert.Equal(t, []string{"First Entry", "Getting Started"}, names)
}

func TestAchievementsEmotionExplorer(t *testing.T) {
	now := testNow()
	old := now.AddDate(0, 0, -20)
	entries := []models.Journal{
		{Mood: models.MoodHappy, CreatedAt: old},
		{Mood: models.MoodSad, CreatedAt: old},
		{Mood: models.MoodExcited, CreatedAt: old},
		{Mood: models.MoodCalm, CreatedAt: old},
	}

	names := achievementNames(Achievements(entries, now))
	assert.Contains(t, names, "Emotion Explorer")
	assert.NotContains(t, names, "Getting Started")
}

func TestAchievementsStreakBadges(t *testing.T) {
	now := testNow()
	offsets := make([]int, 7)
	for i := range offsets {
		offsets[i] = -i
	}
	entries := entriesOnDays(now, offsets...)

	names := achievementNames(Achievements(entries, now))
	assert.Contains(t, names, "3 Day Streak")
	assert.Contains(t, names, "Week Warrior")
	assert.NotContains(t, names, "Monthly Legend")
}

func TestAchievementsEmptyHistory(t *testing.T) {
	assert.Empty(t, Achievements(nil, testNow()))
}
