package models

type Task struct {
	ID          string `json:"id" bson:"_id"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Completed   bool   `json:"completed" bson:"completed"`
}

// TaskUpdate holds the fields of a partial update.
// A nil field keeps the current value.
type TaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil
}

// Apply copies the supplied fields onto the task.
func (u TaskUpdate) Apply(task *Task) {
	if u.Title != nil {
		task.Title = *u.Title
	}
	if u.Description != nil {
		task.Description = *u.Description
	}
	if u.Completed != nil {
		task.Completed = *u.Completed
	}
}
