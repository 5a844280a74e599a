package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adanyl0v/go-tasks-api/internal/models"
	"github.com/adanyl0v/go-tasks-api/internal/repositories"
)

// TaskRepository stores one document per task, keyed by the task id.
type TaskRepository struct {
	logger     zerolog.Logger
	client     *mongo.Client
	collection *mongo.Collection
}

func NewTaskRepository(logger zerolog.Logger, client *mongo.Client, database, collection string) *TaskRepository {
	return &TaskRepository{
		logger:     logger,
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

func (r *TaskRepository) List(ctx context.Context) ([]*models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := make([]*models.Task, 0)
	err = cursor.All(ctx, &tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	r.logger.Debug().
		Int("count", len(tasks)).
		Msg("found tasks")
	return tasks, nil
}

func (r *TaskRepository) Insert(ctx context.Context, task *models.Task) error {
	_, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	r.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error) {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Completed != nil {
		set["completed"] = *update.Completed
	}

	var (
		task = new(models.Task)
		err  error
	)
	filter := bson.M{"_id": id}
	if len(set) == 0 {
		err = r.collection.FindOne(ctx, filter).Decode(task)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(task)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	r.logger.Debug().
		Str("task_id", task.ID).
		Int("fields", len(set)).
		Msg("updated task")
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("failed to delete task: %w", err)
	}
	r.logger.Debug().
		Str("task_id", id).
		Int64("affected", result.DeletedCount).
		Msg("deleted task")
	return result.DeletedCount, nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}
