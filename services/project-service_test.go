package services

import (
	"testing"
	"time"

	"github.com/Shaurya0501/project-manager/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPrepareNewProjectForcesOwner(t *testing.T) {
	requester := primitive.NewObjectID()
	impostor := primitive.NewObjectID()

	// A payload-supplied owner must never survive.
	project := models.Project{Title: "Launch", Owner: impostor}
	require.NoError(t, prepareNewProject(&project, requester, time.Now()))

	require.Equal(t, requester, project.Owner)
	require.Equal(t, models.ProjectStatusPlanning, project.Status)
	require.Equal(t, models.PriorityMedium, project.Priority)
	require.NotNil(t, project.Members)
	require.Empty(t, project.Members)
}

func TestPrepareNewProjectRequiresTitle(t *testing.T) {
	project := models.Project{Title: "   "}
	err := prepareNewProject(&project, primitive.NewObjectID(), time.Now())
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestPrepareNewProjectRejectsBadEnums(t *testing.T) {
	err := prepareNewProject(&models.Project{Title: "Launch", Status: "archived"}, primitive.NewObjectID(), time.Now())
	require.ErrorIs(t, err, models.ErrValidation)

	err = prepareNewProject(&models.Project{Title: "Launch", Priority: "critical"}, primitive.NewObjectID(), time.Now())
	require.ErrorIs(t, err, models.ErrValidation)

	err = prepareNewProject(&models.Project{Title: "Launch", Progress: 150}, primitive.NewObjectID(), time.Now())
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestPrepareNewProjectKeepsSuppliedMembers(t *testing.T) {
	member := primitive.NewObjectID()
	project := models.Project{Title: "Launch", Members: []primitive.ObjectID{member}}
	require.NoError(t, prepareNewProject(&project, primitive.NewObjectID(), time.Now()))
	require.Equal(t, []primitive.ObjectID{member}, project.Members)
}

func TestBuildProjectUpdatePartialMerge(t *testing.T) {
	now := time.Now()
	status := models.ProjectStatusCompleted

	set, err := buildProjectUpdate(models.ProjectUpdate{Status: &status}, now)
	require.NoError(t, err)

	// Only the named field plus the timestamp: title, progress and the rest
	// stay untouched in the stored document.
	require.Len(t, set, 2)
	require.Equal(t, status, set["status"])
	require.Equal(t, now, set["updatedAt"])
	require.NotContains(t, set, "title")
	require.NotContains(t, set, "progress")
	require.NotContains(t, set, "owner")
}

func TestBuildProjectUpdateNeverTouchesOwner(t *testing.T) {
	title := "Renamed"
	progress := 40
	members := []primitive.ObjectID{primitive.NewObjectID()}

	set, err := buildProjectUpdate(models.ProjectUpdate{
		Title:    &title,
		Progress: &progress,
		Members:  &members,
	}, time.Now())
	require.NoError(t, err)

	require.NotContains(t, set, "owner")
	require.NotContains(t, set, "createdAt")
	require.Equal(t, "Renamed", set["title"])
	require.Equal(t, 40, set["progress"])
	require.Equal(t, members, set["members"])
}

func TestBuildProjectUpdateValidation(t *testing.T) {
	blank := "  "
	_, err := buildProjectUpdate(models.ProjectUpdate{Title: &blank}, time.Now())
	require.ErrorIs(t, err, models.ErrValidation)

	bad := models.ProjectStatus("archived")
	_, err = buildProjectUpdate(models.ProjectUpdate{Status: &bad}, time.Now())
	require.ErrorIs(t, err, models.ErrValidation)

	over := 101
	_, err = buildProjectUpdate(models.ProjectUpdate{Progress: &over}, time.Now())
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestProjectViewExpandsReferences(t *testing.T) {
	owner := primitive.NewObjectID()
	member := primitive.NewObjectID()

	project := models.Project{
		ID:      primitive.NewObjectID(),
		Title:   "Launch",
		Owner:   owner,
		Members: []primitive.ObjectID{member},
	}
	users := map[primitive.ObjectID]models.UserSummary{
		owner:  {ID: owner, Name: "Ana", Email: "ana@example.com"},
		member: {ID: member, Name: "Marko", Email: "marko@example.com"},
	}

	view := projectView(project, users)

	require.Equal(t, "Ana", view.Owner.Name)
	require.Equal(t, "ana@example.com", view.Owner.Email)
	require.Len(t, view.Members, 1)
	require.Equal(t, "Marko", view.Members[0].Name)
}

func TestProjectViewDeletedUserFallsBackToID(t *testing.T) {
	owner := primitive.NewObjectID()
	view := projectView(models.Project{Owner: owner}, nil)

	require.Equal(t, owner, view.Owner.ID)
	require.Empty(t, view.Owner.Name)
	require.NotNil(t, view.Members)
}
