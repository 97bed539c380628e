package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted:
		return true
	}
	return false
}

// Task has no independent ACL: every operation on it is authorized against
// the parent project.
type Task struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title          string              `bson:"title" json:"title"`
	Description    string              `bson:"description" json:"description"`
	Status         TaskStatus          `bson:"status" json:"status"`
	Priority       Priority            `bson:"priority" json:"priority"`
	Project        primitive.ObjectID  `bson:"project" json:"project"`
	AssignedTo     *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo"`
	CreatedBy      primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	DueDate        *time.Time          `bson:"dueDate,omitempty" json:"dueDate,omitempty"`
	EstimatedHours float64             `bson:"estimatedHours" json:"estimatedHours"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// TaskUpdate carries the fields a PUT may change. Project and createdBy are
// deliberately absent so a payload can never reassign a task to another
// project or forge its creator. AssignedTo and dueDate accept an explicit
// null to clear the stored value.
type TaskUpdate struct {
	Title          *string      `json:"title"`
	Description    *string      `json:"description"`
	Status         *TaskStatus  `json:"status"`
	Priority       *Priority    `json:"priority"`
	AssignedTo     NullableID   `json:"assignedTo"`
	DueDate        NullableTime `json:"dueDate"`
	EstimatedHours *float64     `json:"estimatedHours"`
}

// TaskView is a task with its references expanded for display.
type TaskView struct {
	ID             primitive.ObjectID `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	Status         TaskStatus         `json:"status"`
	Priority       Priority           `json:"priority"`
	Project        ProjectSummary     `json:"project"`
	AssignedTo     *UserSummary       `json:"assignedTo"`
	CreatedBy      UserSummary        `json:"createdBy"`
	DueDate        *time.Time         `json:"dueDate,omitempty"`
	EstimatedHours float64            `json:"estimatedHours"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}
