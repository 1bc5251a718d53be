package model

import "time"

const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusReview     = "review"
	TaskStatusComplete   = "complete"
	TaskStatusDue        = "due"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// ValidTaskStatus reports whether s is one of the named task states. There is
// no transition graph; any state is reachable from any other.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusComplete, TaskStatusDue:
		return true
	}
	return false
}

func ValidTaskPriority(p string) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// Comment is an ordered entry in a task's comment thread.
type Comment struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Task is a unit of work scoped to one project. TaskID is the human-facing
// sequential number, distinct from the primary identifier.
type Task struct {
	ID          string     `json:"id"`
	TaskID      int        `json:"task_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedBy   string     `json:"created_by"`
	AssignedTo  []string   `json:"assigned_to"`
	Project     string     `json:"project"`
	Subtasks    []string   `json:"subtasks"`
	Comments    []Comment  `json:"comments"`
	Attachments []string   `json:"attachments"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
