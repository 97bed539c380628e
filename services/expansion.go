package services

import (
	"context"
	"fmt"

	"github.com/Shaurya0501/project-manager/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// loadUserSummaries fetches the reduced user projections for a set of ids in
// one query. Ids with no matching user are simply absent from the result.
func loadUserSummaries(ctx context.Context, users *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	summaries := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	cursor, err := users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load user references: %v", err)
	}
	defer cursor.Close(ctx)

	var found []models.UserSummary
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode user references: %v", err)
	}

	for _, s := range found {
		summaries[s.ID] = s
	}
	return summaries, nil
}

// userSummaryOrFallback degrades to a bare-id projection when the referenced
// user no longer exists, so expansion never fails a read.
func userSummaryOrFallback(users map[primitive.ObjectID]models.UserSummary, id primitive.ObjectID) models.UserSummary {
	if s, ok := users[id]; ok {
		return s
	}
	return models.UserSummary{ID: id}
}

// projectView expands a project's owner and member references. Expansion is
// purely presentational: authorization has already run on the raw ids.
func projectView(p models.Project, users map[primitive.ObjectID]models.UserSummary) models.ProjectView {
	members := make([]models.UserSummary, 0, len(p.Members))
	for _, id := range p.Members {
		members = append(members, userSummaryOrFallback(users, id))
	}

	return models.ProjectView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		Priority:    p.Priority,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Progress:    p.Progress,
		Owner:       userSummaryOrFallback(users, p.Owner),
		Members:     members,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// taskView expands a task's assignee, creator and parent project references.
func taskView(t models.Task, project models.ProjectSummary, users map[primitive.ObjectID]models.UserSummary) models.TaskView {
	view := models.TaskView{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		Project:        project,
		CreatedBy:      userSummaryOrFallback(users, t.CreatedBy),
		DueDate:        t.DueDate,
		EstimatedHours: t.EstimatedHours,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}

	if t.AssignedTo != nil {
		assignee := userSummaryOrFallback(users, *t.AssignedTo)
		view.AssignedTo = &assignee
	}
	return view
}
