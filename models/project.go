package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in-progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on-hold"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Status      ProjectStatus        `bson:"status" json:"status"`
	Priority    Priority             `bson:"priority" json:"priority"`
	StartDate   *time.Time           `bson:"startDate,omitempty" json:"startDate,omitempty"`
	EndDate     *time.Time           `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Progress    int                  `bson:"progress" json:"progress"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Members     []primitive.ObjectID `bson:"members" json:"members"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasAccess reports whether userID may read the project or operate on its
// tasks. The owner is implicitly authorized and does not need to appear in
// the members list.
func (p *Project) HasAccess(userID primitive.ObjectID) bool {
	if p.Owner == userID {
		return true
	}
	for _, m := range p.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// IsOwnedBy is the stricter predicate gating project update and delete.
func (p *Project) IsOwnedBy(userID primitive.ObjectID) bool {
	return p.Owner == userID
}

// ProjectUpdate carries the fields a PUT may change. Owner and creation
// timestamp are deliberately absent so a payload can never overwrite them.
// StartDate and endDate accept an explicit null to clear the stored value.
type ProjectUpdate struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Status      *ProjectStatus        `json:"status"`
	Priority    *Priority             `json:"priority"`
	StartDate   NullableTime          `json:"startDate"`
	EndDate     NullableTime          `json:"endDate"`
	Progress    *int                  `json:"progress"`
	Members     *[]primitive.ObjectID `json:"members"`
}

// ProjectView is a project with its user references expanded for display.
type ProjectView struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Status      ProjectStatus      `json:"status"`
	Priority    Priority           `json:"priority"`
	StartDate   *time.Time         `json:"startDate,omitempty"`
	EndDate     *time.Time         `json:"endDate,omitempty"`
	Progress    int                `json:"progress"`
	Owner       UserSummary        `json:"owner"`
	Members     []UserSummary      `json:"members"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// ProjectSummary is the projection embedded in expanded task responses.
type ProjectSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Title string             `json:"title"`
}
