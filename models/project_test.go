package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProjectHasAccess(t *testing.T) {
	owner := primitive.NewObjectID()
	member := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	project := Project{
		Owner:   owner,
		Members: []primitive.ObjectID{member},
	}

	tests := []struct {
		name   string
		userID primitive.ObjectID
		want   bool
	}{
		{"owner", owner, true},
		{"member", member, true},
		{"stranger", stranger, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, project.HasAccess(tt.userID))
		})
	}
}

func TestProjectHasAccessOwnerNotInMembers(t *testing.T) {
	owner := primitive.NewObjectID()

	// The owner is implicitly authorized even with an empty members list.
	project := Project{Owner: owner}
	require.True(t, project.HasAccess(owner))
}

func TestProjectIsOwnedBy(t *testing.T) {
	owner := primitive.NewObjectID()
	member := primitive.NewObjectID()

	project := Project{
		Owner:   owner,
		Members: []primitive.ObjectID{member},
	}

	require.True(t, project.IsOwnedBy(owner))

	// Membership grants read and task rights, never project mutation.
	require.False(t, project.IsOwnedBy(member))
	require.False(t, project.IsOwnedBy(primitive.NewObjectID()))
}

func TestProjectStatusValid(t *testing.T) {
	for _, s := range []ProjectStatus{ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusOnHold} {
		require.True(t, s.Valid(), "status %q", s)
	}
	require.False(t, ProjectStatus("archived").Valid())
	require.False(t, ProjectStatus("").Valid())
}

func TestTaskStatusValid(t *testing.T) {
	for _, s := range []TaskStatus{TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusCompleted} {
		require.True(t, s.Valid(), "status %q", s)
	}
	require.False(t, TaskStatus("pending").Valid())
}

func TestPriorityValid(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent} {
		require.True(t, p.Valid(), "priority %q", p)
	}
	require.False(t, Priority("critical").Valid())
}
