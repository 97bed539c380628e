package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Shaurya0501/project-manager/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProjectService struct {
	ProjectsCollection *mongo.Collection
	TasksCollection    *mongo.Collection
	UsersCollection    *mongo.Collection
}

// NewProjectService initializes a new ProjectService with the necessary MongoDB collections.
func NewProjectService(projectsCollection, tasksCollection, usersCollection *mongo.Collection) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projectsCollection,
		TasksCollection:    tasksCollection,
		UsersCollection:    usersCollection,
	}
}

// ListProjects returns every project the requester owns or is a member of,
// newest first, with user references expanded.
func (s *ProjectService) ListProjects(ctx context.Context, userID primitive.ObjectID) ([]models.ProjectView, error) {
	filter := bson.M{"$or": []bson.M{
		{"owner": userID},
		{"members": userID},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.ProjectsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}

	var refs []primitive.ObjectID
	for _, p := range projects {
		refs = append(refs, p.Owner)
		refs = append(refs, p.Members...)
	}
	users, err := loadUserSummaries(ctx, s.UsersCollection, refs)
	if err != nil {
		return nil, err
	}

	views := make([]models.ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView(p, users))
	}
	return views, nil
}

// GetProjectByID fetches a single project. Existence is checked before the
// access predicate so a missing id is always reported as not found.
func (s *ProjectService) GetProjectByID(ctx context.Context, projectID, userID primitive.ObjectID) (*models.ProjectView, error) {
	project, err := s.fetchProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasAccess(userID) {
		return nil, models.ErrNotAuthorized
	}
	return s.expandProject(ctx, project)
}

// CreateProject inserts a new project. The requester becomes owner no matter
// what the payload carried.
func (s *ProjectService) CreateProject(ctx context.Context, project models.Project, ownerID primitive.ObjectID) (*models.ProjectView, error) {
	if err := prepareNewProject(&project, ownerID, time.Now()); err != nil {
		return nil, err
	}

	result, err := s.ProjectsCollection.InsertOne(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %v", err)
	}
	project.ID = result.InsertedID.(primitive.ObjectID)

	return s.expandProject(ctx, &project)
}

// UpdateProject applies a partial merge of the whitelisted fields. Only the
// owner may update a project; members get read and task rights only.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID, userID primitive.ObjectID, upd models.ProjectUpdate) (*models.ProjectView, error) {
	project, err := s.fetchProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsOwnedBy(userID) {
		return nil, models.ErrNotAuthorized
	}

	set, err := buildProjectUpdate(upd, time.Now())
	if err != nil {
		return nil, err
	}

	if _, err := s.ProjectsCollection.UpdateOne(ctx, bson.M{"_id": projectID}, bson.M{"$set": set}); err != nil {
		return nil, fmt.Errorf("failed to update project: %v", err)
	}

	updated, err := s.fetchProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.expandProject(ctx, updated)
}

// DeleteProject removes a project and all of its tasks. Owner only; a repeat
// delete reports not found.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID, userID primitive.ObjectID) error {
	project, err := s.fetchProject(ctx, projectID)
	if err != nil {
		return err
	}
	if !project.IsOwnedBy(userID) {
		return models.ErrNotAuthorized
	}

	if _, err := s.ProjectsCollection.DeleteOne(ctx, bson.M{"_id": projectID}); err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}

	// Cascade: tasks of a deleted project are unreachable through the API,
	// so remove them instead of leaving orphaned documents behind.
	if _, err := s.TasksCollection.DeleteMany(ctx, bson.M{"project": projectID}); err != nil {
		return fmt.Errorf("failed to delete project tasks: %v", err)
	}
	return nil
}

func (s *ProjectService) fetchProject(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to fetch project: %v", err)
	}
	return &project, nil
}

func (s *ProjectService) expandProject(ctx context.Context, project *models.Project) (*models.ProjectView, error) {
	refs := append([]primitive.ObjectID{project.Owner}, project.Members...)
	users, err := loadUserSummaries(ctx, s.UsersCollection, refs)
	if err != nil {
		return nil, err
	}
	view := projectView(*project, users)
	return &view, nil
}

// prepareNewProject validates a project payload and fills in defaults before
// insert. The owner is server-assigned, never taken from the payload.
func prepareNewProject(p *models.Project, ownerID primitive.ObjectID, now time.Time) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", models.ErrValidation)
	}

	if p.Status == "" {
		p.Status = models.ProjectStatusPlanning
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: invalid project status %q", models.ErrValidation, p.Status)
	}

	if p.Priority == "" {
		p.Priority = models.PriorityMedium
	}
	if !p.Priority.Valid() {
		return fmt.Errorf("%w: invalid priority %q", models.ErrValidation, p.Priority)
	}

	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("%w: progress must be between 0 and 100", models.ErrValidation)
	}

	p.ID = primitive.NilObjectID
	p.Owner = ownerID
	if p.Members == nil {
		p.Members = []primitive.ObjectID{}
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

// buildProjectUpdate turns a partial update into a $set document containing
// only the whitelisted fields. Owner and createdAt can never appear in it.
func buildProjectUpdate(upd models.ProjectUpdate, now time.Time) (bson.M, error) {
	set := bson.M{"updatedAt": now}

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
		}
		set["title"] = title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, fmt.Errorf("%w: invalid project status %q", models.ErrValidation, *upd.Status)
		}
		set["status"] = *upd.Status
	}
	if upd.Priority != nil {
		if !upd.Priority.Valid() {
			return nil, fmt.Errorf("%w: invalid priority %q", models.ErrValidation, *upd.Priority)
		}
		set["priority"] = *upd.Priority
	}
	if upd.StartDate.Set {
		if upd.StartDate.Value != nil {
			set["startDate"] = *upd.StartDate.Value
		} else {
			set["startDate"] = nil
		}
	}
	if upd.EndDate.Set {
		if upd.EndDate.Value != nil {
			set["endDate"] = *upd.EndDate.Value
		} else {
			set["endDate"] = nil
		}
	}
	if upd.Progress != nil {
		if *upd.Progress < 0 || *upd.Progress > 100 {
			return nil, fmt.Errorf("%w: progress must be between 0 and 100", models.ErrValidation)
		}
		set["progress"] = *upd.Progress
	}
	if upd.Members != nil {
		members := *upd.Members
		if members == nil {
			members = []primitive.ObjectID{}
		}
		set["members"] = members
	}

	return set, nil
}
