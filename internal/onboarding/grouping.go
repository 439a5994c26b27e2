// Package onboarding holds the pure transformations the portal runs over a
// freshly fetched snapshot of task assignments: grouping assignments into
// logical tasks and deriving progress figures from them.
//
// Nothing here performs I/O, keeps state between calls or mutates its input.
package onboarding

import (
	"time"

	"github.com/yukikurage/onboarding-portal/internal/models"
)

// GroupKey identifies a logical task. Two assignments belong to the same
// logical task iff both fields are exactly equal.
type GroupKey struct {
	Title       string
	Description string
}

// KeyOf returns the grouping key of an assignment.
func KeyOf(a models.TaskAssignment) GroupKey {
	return GroupKey{Title: a.Title, Description: a.Description}
}

// Assignee is one employee's view of a logical task.
type Assignee struct {
	UserID      string            `json:"user_id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Role        models.Role       `json:"role"`
	Status      models.TaskStatus `json:"status"`
	LastUpdated time.Time         `json:"last_updated"`
}

// GroupedTask is a logical task together with every assignment of it.
// Shared fields are those of the first assignment seen for the key.
type GroupedTask struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     time.Time       `json:"due_date"`
	Kind        models.TaskKind `json:"kind"`
	Picture     string          `json:"picture,omitempty"`
	Created     time.Time       `json:"created"`
	Assignees   []Assignee      `json:"assignees"`
}

// Key returns the grouping key of the task.
func (g GroupedTask) Key() GroupKey {
	return GroupKey{Title: g.Title, Description: g.Description}
}

// Statuses returns the assignee statuses in assignee order.
func (g GroupedTask) Statuses() []models.TaskStatus {
	statuses := make([]models.TaskStatus, len(g.Assignees))
	for i, a := range g.Assignees {
		statuses[i] = a.Status
	}
	return statuses
}

// assignments expands the group back into one record per assignee. The
// shared fields are taken from the group, so the assignment IDs of all but
// the first assignee are not recoverable and are left empty.
func (g GroupedTask) assignments() []models.TaskAssignment {
	out := make([]models.TaskAssignment, len(g.Assignees))
	for i, a := range g.Assignees {
		id := ""
		if i == 0 {
			id = g.ID
		}
		out[i] = models.TaskAssignment{
			ID:          id,
			Title:       g.Title,
			Description: g.Description,
			Status:      a.Status,
			DueDate:     g.DueDate,
			Assignee: models.UserRef{
				ID:    a.UserID,
				Name:  a.Name,
				Email: a.Email,
				Role:  a.Role,
			},
			Kind:      g.Kind,
			Picture:   g.Picture,
			CreatedAt: g.Created,
			UpdatedAt: a.LastUpdated,
		}
	}
	return out
}

// GroupByContent folds assignments into logical tasks keyed by
// (title, description). Groups come out in the order their key was first
// seen and assignees in input order; the same user appearing twice is kept
// twice. An empty title or description is just an empty key component.
func GroupByContent(assignments []models.TaskAssignment) []GroupedTask {
	groups := make([]GroupedTask, 0)
	index := make(map[GroupKey]int)

	for _, a := range assignments {
		key := KeyOf(a)
		if i, ok := index[key]; ok {
			groups[i].Assignees = append(groups[i].Assignees, assigneeOf(a))
			continue
		}

		index[key] = len(groups)
		groups = append(groups, GroupedTask{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			DueDate:     a.DueDate,
			Kind:        a.Kind,
			Picture:     a.Picture,
			Created:     a.CreatedAt,
			Assignees:   []Assignee{assigneeOf(a)},
		})
	}

	return groups
}

// DegenerateKeys reports every assignment whose title or description is
// empty. These still group; the report exists so callers can warn.
func DegenerateKeys(assignments []models.TaskAssignment) []*DataError {
	var problems []*DataError
	for _, a := range assignments {
		if a.Title == "" {
			problems = append(problems, &DataError{Kind: KindDegenerateKey, Field: "title", RecordID: a.ID, Err: ErrDegenerateKey})
		}
		if a.Description == "" {
			problems = append(problems, &DataError{Kind: KindDegenerateKey, Field: "description", RecordID: a.ID, Err: ErrDegenerateKey})
		}
	}
	return problems
}

func assigneeOf(a models.TaskAssignment) Assignee {
	return Assignee{
		UserID:      a.Assignee.ID,
		Name:        a.Assignee.Name,
		Email:       a.Assignee.Email,
		Role:        a.Assignee.Role,
		Status:      a.Status,
		LastUpdated: a.UpdatedAt,
	}
}
