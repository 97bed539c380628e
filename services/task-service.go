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

type TaskService struct {
	TasksCollection    *mongo.Collection
	ProjectsCollection *mongo.Collection
	UsersCollection    *mongo.Collection
}

func NewTaskService(tasksCollection, projectsCollection, usersCollection *mongo.Collection) *TaskService {
	return &TaskService{
		TasksCollection:    tasksCollection,
		ProjectsCollection: projectsCollection,
		UsersCollection:    usersCollection,
	}
}

// ListTasksByProject returns the project's tasks newest first. Access is
// checked on the project; tasks carry no ACL of their own.
func (s *TaskService) ListTasksByProject(ctx context.Context, projectID, userID primitive.ObjectID) ([]models.TaskView, error) {
	project, err := s.fetchProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.HasAccess(userID) {
		return nil, models.ErrNotAuthorized
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.TasksCollection.Find(ctx, bson.M{"project": projectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}

	var refs []primitive.ObjectID
	for _, t := range tasks {
		refs = append(refs, t.CreatedBy)
		if t.AssignedTo != nil {
			refs = append(refs, *t.AssignedTo)
		}
	}
	users, err := loadUserSummaries(ctx, s.UsersCollection, refs)
	if err != nil {
		return nil, err
	}

	summary := models.ProjectSummary{ID: project.ID, Title: project.Title}
	views := make([]models.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView(t, summary, users))
	}
	return views, nil
}

// GetTaskByID fetches a task and authorizes against its parent project.
func (s *TaskService) GetTaskByID(ctx context.Context, taskID, userID primitive.ObjectID) (*models.TaskView, error) {
	task, err := s.fetchTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.fetchProject(ctx, task.Project)
	if err != nil {
		return nil, err
	}
	if !project.HasAccess(userID) {
		return nil, models.ErrNotAuthorized
	}

	return s.expandTask(ctx, task, project)
}

// CreateTask inserts a task under the payload's target project after the
// owner-or-member check. createdBy is forced to the requester.
func (s *TaskService) CreateTask(ctx context.Context, task models.Task, requesterID primitive.ObjectID) (*models.TaskView, error) {
	project, err := s.fetchProject(ctx, task.Project)
	if err != nil {
		return nil, err
	}
	if !project.HasAccess(requesterID) {
		return nil, models.ErrNotAuthorized
	}

	if err := prepareNewTask(&task, requesterID, time.Now()); err != nil {
		return nil, err
	}

	result, err := s.TasksCollection.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)

	return s.expandTask(ctx, &task, project)
}

// UpdateTask applies a partial merge of the whitelisted fields. Any member of
// the parent project may update, which is deliberately wider than the
// owner-only rule on the project itself.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, userID primitive.ObjectID, upd models.TaskUpdate) (*models.TaskView, error) {
	task, err := s.fetchTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.fetchProject(ctx, task.Project)
	if err != nil {
		return nil, err
	}
	if !project.HasAccess(userID) {
		return nil, models.ErrNotAuthorized
	}

	set, err := buildTaskUpdate(upd, time.Now())
	if err != nil {
		return nil, err
	}

	if _, err := s.TasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, bson.M{"$set": set}); err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}

	updated, err := s.fetchTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.expandTask(ctx, updated, project)
}

// DeleteTask removes a task under the owner-or-member rule of its parent
// project, not task-creator-only.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, userID primitive.ObjectID) error {
	task, err := s.fetchTask(ctx, taskID)
	if err != nil {
		return err
	}

	project, err := s.fetchProject(ctx, task.Project)
	if err != nil {
		return err
	}
	if !project.HasAccess(userID) {
		return models.ErrNotAuthorized
	}

	if _, err := s.TasksCollection.DeleteOne(ctx, bson.M{"_id": taskID}); err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	return nil
}

func (s *TaskService) fetchTask(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to fetch task: %v", err)
	}
	return &task, nil
}

func (s *TaskService) fetchProject(ctx context.Context, projectID primitive.ObjectID) (*models.Project, error) {
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

func (s *TaskService) expandTask(ctx context.Context, task *models.Task, project *models.Project) (*models.TaskView, error) {
	refs := []primitive.ObjectID{task.CreatedBy}
	if task.AssignedTo != nil {
		refs = append(refs, *task.AssignedTo)
	}
	users, err := loadUserSummaries(ctx, s.UsersCollection, refs)
	if err != nil {
		return nil, err
	}

	view := taskView(*task, models.ProjectSummary{ID: project.ID, Title: project.Title}, users)
	return &view, nil
}

// prepareNewTask validates a task payload and fills in defaults before
// insert. createdBy is server-assigned, never taken from the payload.
func prepareNewTask(t *models.Task, requesterID primitive.ObjectID, now time.Time) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", models.ErrValidation)
	}

	if t.Status == "" {
		t.Status = models.TaskStatusTodo
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: invalid task status %q", models.ErrValidation, t.Status)
	}

	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: invalid priority %q", models.ErrValidation, t.Priority)
	}

	if t.EstimatedHours < 0 {
		return fmt.Errorf("%w: estimated hours must not be negative", models.ErrValidation)
	}

	t.ID = primitive.NilObjectID
	t.CreatedBy = requesterID
	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

// buildTaskUpdate turns a partial update into a $set document containing only
// the whitelisted fields. Project and createdBy can never appear in it.
func buildTaskUpdate(upd models.TaskUpdate, now time.Time) (bson.M, error) {
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
			return nil, fmt.Errorf("%w: invalid task status %q", models.ErrValidation, *upd.Status)
		}
		set["status"] = *upd.Status
	}
	if upd.Priority != nil {
		if !upd.Priority.Valid() {
			return nil, fmt.Errorf("%w: invalid priority %q", models.ErrValidation, *upd.Priority)
		}
		set["priority"] = *upd.Priority
	}
	if upd.AssignedTo.Set {
		if upd.AssignedTo.Value != nil {
			set["assignedTo"] = *upd.AssignedTo.Value
		} else {
			// Explicit null unassigns the task.
			set["assignedTo"] = nil
		}
	}
	if upd.DueDate.Set {
		if upd.DueDate.Value != nil {
			set["dueDate"] = *upd.DueDate.Value
		} else {
			set["dueDate"] = nil
		}
	}
	if upd.EstimatedHours != nil {
		if *upd.EstimatedHours < 0 {
			return nil, fmt.Errorf("%w: estimated hours must not be negative", models.ErrValidation)
		}
		set["estimatedHours"] = *upd.EstimatedHours
	}

	return set, nil
}
