package jobs

import (
	"context"
	"time"

	"github.com/salesdesk/crm-api/internal/repository"
	"go.uber.org/zap"
)

// TaskReminderJob periodically sweeps for incomplete tasks whose expiry
// date has passed and logs a summary. The dashboard surfaces the same
// tasks; this keeps an operator trail in the logs.
type TaskReminderJob struct {
	taskRepo *repository.TaskRepository
	logger   *zap.Logger
}

// NewTaskReminderJob creates a new TaskReminderJob
func NewTaskReminderJob(taskRepo *repository.TaskRepository, logger *zap.Logger) *TaskReminderJob {
	return &TaskReminderJob{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// Run performs one sweep
func (j *TaskReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tasks, err := j.taskRepo.ListOverdue(ctx, time.Now())
	if err != nil {
		j.logger.Error("overdue task sweep failed", zap.Error(err))
		return
	}
	if len(tasks) == 0 {
		return
	}

	urgent := 0
	for _, t := range tasks {
		if t.Urgent || t.VeryUrgent {
			urgent++
		}
	}

	j.logger.Warn("overdue tasks pending",
		zap.Int("total", len(tasks)),
		zap.Int("urgent", urgent),
		zap.Time("oldest_expiry", tasks[0].ExpiryDate))
}
