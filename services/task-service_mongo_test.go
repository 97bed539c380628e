package services

import (
	"context"
	"testing"

	"github.com/Shaurya0501/project-manager/models"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newTaskServiceUnderTest(mt *mtest.T) *TaskService {
	db := mt.Coll.Database()
	return NewTaskService(
		db.Collection("tasks"),
		db.Collection("projects"),
		db.Collection("users"),
	)
}

func taskDoc(id, projectID, createdBy primitive.ObjectID) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Ship it"},
		{Key: "status", Value: "todo"},
		{Key: "priority", Value: "medium"},
		{Key: "project", Value: projectID},
		{Key: "createdBy", Value: createdBy},
	}
}

func TestGetTaskByIDMissingTask(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("not found before any access check", func(mt *mtest.T) {
		svc := newTaskServiceUnderTest(mt)
		ns := mt.Coll.Database().Name() + ".tasks"

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := svc.GetTaskByID(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		require.ErrorIs(mt, err, models.ErrTaskNotFound)
	})
}

func TestGetTaskByIDStranger(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("parent project rejects outsiders", func(mt *mtest.T) {
		svc := newTaskServiceUnderTest(mt)
		dbName := mt.Coll.Database().Name()

		taskID := primitive.NewObjectID()
		projectID := primitive.NewObjectID()
		owner := primitive.NewObjectID()
		stranger := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, dbName+".tasks", mtest.FirstBatch, taskDoc(taskID, projectID, owner)),
			mtest.CreateCursorResponse(0, dbName+".projects", mtest.FirstBatch, projectDoc(projectID, owner)),
		)

		_, err := svc.GetTaskByID(context.Background(), taskID, stranger)
		require.ErrorIs(mt, err, models.ErrNotAuthorized)
	})
}

func TestGetTaskByIDOrphanReportsProjectNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("task whose project is gone", func(mt *mtest.T) {
		svc := newTaskServiceUnderTest(mt)
		dbName := mt.Coll.Database().Name()

		taskID := primitive.NewObjectID()
		projectID := primitive.NewObjectID()
		owner := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, dbName+".tasks", mtest.FirstBatch, taskDoc(taskID, projectID, owner)),
			mtest.CreateCursorResponse(0, dbName+".projects", mtest.FirstBatch),
		)

		_, err := svc.GetTaskByID(context.Background(), taskID, owner)
		require.ErrorIs(mt, err, models.ErrProjectNotFound)
	})
}

func TestDeleteTaskMemberAllowed(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("any project member may delete a task", func(mt *mtest.T) {
		svc := newTaskServiceUnderTest(mt)
		dbName := mt.Coll.Database().Name()

		taskID := primitive.NewObjectID()
		projectID := primitive.NewObjectID()
		owner := primitive.NewObjectID()
		member := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, dbName+".tasks", mtest.FirstBatch, taskDoc(taskID, projectID, owner)),
			mtest.CreateCursorResponse(0, dbName+".projects", mtest.FirstBatch, projectDoc(projectID, owner, member)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		require.NoError(mt, svc.DeleteTask(context.Background(), taskID, member))

		var deletes []string
		for _, evt := range mt.GetAllStartedEvents() {
			if evt.CommandName == "delete" {
				deletes = append(deletes, evt.Command.Lookup("delete").StringValue())
			}
		}
		require.Equal(mt, []string{"tasks"}, deletes)
	})
}

func TestDeleteTaskStrangerRejected(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("outsider may not delete a task", func(mt *mtest.T) {
		svc := newTaskServiceUnderTest(mt)
		dbName := mt.Coll.Database().Name()

		taskID := primitive.NewObjectID()
		projectID := primitive.NewObjectID()
		owner := primitive.NewObjectID()
		stranger := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, dbName+".tasks", mtest.FirstBatch, taskDoc(taskID, projectID, owner)),
			mtest.CreateCursorResponse(0, dbName+".projects", mtest.FirstBatch, projectDoc(projectID, owner)),
		)

		err := svc.DeleteTask(context.Background(), taskID, stranger)
		require.ErrorIs(mt, err, models.ErrNotAuthorized)
	})
}
