package domain

// TaskStatus is the lifecycle state of a task on the task board.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "Not Started"
	TaskInProgress TaskStatus = "In Progress"
	TaskCompleted  TaskStatus = "Completed"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskNotStarted: true, TaskInProgress: true, TaskCompleted: true,
}

// Task is a tracked unit of work. TimeSpent accumulates completed timer
// segments in seconds and is only written when a task is completed.
type Task struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Status       TaskStatus `json:"status"`
	Assignee     string     `json:"assignee"`
	Deadline     string     `json:"deadline"` // YYYY-MM-DD
	TimeEstimate float64    `json:"timeEstimate"` // hours
	TimeSpent    int        `json:"timeSpent,omitempty"` // seconds
}
