package onboarding

import (
	"math"
	"sort"
	"time"

	"github.com/yukikurage/onboarding-portal/internal/models"
)

// DefaultUpcomingLimit is used by UpcomingTasks when no positive limit is given.
const DefaultUpcomingLimit = 3

const day = 24 * time.Hour

// Onboarding phase labels.
const (
	PhaseWeekOne     = "Week 1: Getting Started"
	PhaseMonthOne    = "Month 1: Foundation Building"
	PhaseIntegration = "Month 2-3: Integration"
	PhaseOngoing     = "Ongoing: Full Integration"
)

// StatusCounts tallies statuses. Values outside the three known statuses are
// not added to any bucket; Other records how many were left out.
type StatusCounts struct {
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Pending    int `json:"pending"`
	Other      int `json:"other"`
}

// Statuses extracts the status of each assignment.
func Statuses(tasks []models.TaskAssignment) []models.TaskStatus {
	statuses := make([]models.TaskStatus, len(tasks))
	for i, t := range tasks {
		statuses[i] = t.Status
	}
	return statuses
}

// CountStatuses counts statuses exactly.
func CountStatuses(statuses []models.TaskStatus) StatusCounts {
	var counts StatusCounts
	for _, s := range statuses {
		switch s {
		case models.TaskStatusCompleted:
			counts.Completed++
		case models.TaskStatusInProgress:
			counts.InProgress++
		case models.TaskStatusPending:
			counts.Pending++
		default:
			counts.Other++
		}
	}
	return counts
}

// CompletionPercentage returns round(100 * completed / total), rounding
// halves up, and 0 for an empty input.
func CompletionPercentage(statuses []models.TaskStatus) int {
	if len(statuses) == 0 {
		return 0
	}
	completed := 0
	for _, s := range statuses {
		if s == models.TaskStatusCompleted {
			completed++
		}
	}
	return int(math.Floor(float64(completed*100)/float64(len(statuses)) + 0.5))
}

// DaysUntilDue returns ceil((due - now) / 24h). Negative values mean the
// task is overdue by that many days; a deadline later today is 1, one that
// passed less than a day ago is 0. For the "due today is 0" reading of a
// same-day deadline use CalendarDaysUntilDue.
func DaysUntilDue(due, now time.Time) int {
	return int(math.Ceil(float64(due.Sub(now)) / float64(day)))
}

// CalendarDaysUntilDue returns the number of calendar days between now's
// date and due's date, both taken in now's location. A deadline anywhere
// in today is 0. Used for "due today" and "overdue" labels.
func CalendarDaysUntilDue(due, now time.Time) int {
	loc := now.Location()
	d := due.In(loc)
	dueDay := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(dueDay.Sub(nowDay) / day)
}

// ElapsedDays returns floor((now - start) / 24h).
func ElapsedDays(start, now time.Time) int {
	return int(math.Floor(float64(now.Sub(start)) / float64(day)))
}

// Phase labels how far into onboarding someone who started at start is.
func Phase(start, now time.Time) string {
	elapsed := ElapsedDays(start, now)
	switch {
	case elapsed <= 7:
		return PhaseWeekOne
	case elapsed <= 30:
		return PhaseMonthOne
	case elapsed <= 90:
		return PhaseIntegration
	default:
		return PhaseOngoing
	}
}

// TasksDueToday keeps tasks due in [midnight(today), next midnight) in
// today's location, then keeps only the first task per grouping key.
// Tasks without a due date are never due today.
func TasksDueToday(tasks []models.TaskAssignment, today time.Time) []models.TaskAssignment {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	end := start.AddDate(0, 0, 1)

	seen := make(map[GroupKey]struct{})
	result := make([]models.TaskAssignment, 0)
	for _, t := range tasks {
		if !t.HasDueDate() || t.DueDate.Before(start) || !t.DueDate.Before(end) {
			continue
		}
		key := KeyOf(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, t)
	}
	return result
}

// UpcomingTasks returns the non-completed tasks ordered by due date,
// earliest first, truncated to limit. Equal due dates keep input order;
// tasks without a due date sort after all dated ones.
func UpcomingTasks(tasks []models.TaskAssignment, limit int) []models.TaskAssignment {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}

	open := make([]models.TaskAssignment, 0, len(tasks))
	for _, t := range tasks {
		if t.Status != models.TaskStatusCompleted {
			open = append(open, t)
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		a, b := open[i], open[j]
		if !a.HasDueDate() || !b.HasDueDate() {
			return a.HasDueDate() && !b.HasDueDate()
		}
		return a.DueDate.Before(b.DueDate)
	})

	if len(open) > limit {
		open = open[:limit]
	}
	return open
}
