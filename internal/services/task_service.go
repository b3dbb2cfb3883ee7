package services

import (
	"errors"
	"fmt"

	"github.com/avigeya/projectboard/internal/dto"
	"github.com/avigeya/projectboard/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrStatusNotFound  = errors.New("status not found")
	ErrStageNotFound   = errors.New("stage not found")
	ErrProjectNotFound = errors.New("project not found")
)

// TaskService handles task mutations. Every operation runs inside a single
// all-or-nothing transaction.
type TaskService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *gorm.DB, log *zap.Logger) *TaskService {
	return &TaskService{db: db, log: log}
}

// UpdateTask updates scalar fields and relations of a task from the given
// DTO. Relation ids are resolved through their repositories and fail with a
// not-found error when missing. The version is advanced by the repository
// and never copied from the input; a lost race surfaces as
// repository.ErrVersionConflict.
func (s *TaskService) UpdateTask(taskID int64, in dto.TaskDTO) (*dto.TaskDTO, error) {
	var out *dto.TaskDTO

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taskRepo := repository.NewTaskRepository(tx)
		statusRepo := repository.NewStatusRepository(tx)
		stageRepo := repository.NewStageRepository(tx)
		projectRepo := repository.NewProjectRepository(tx)

		task, err := taskRepo.FindByID(taskID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return fmt.Errorf("failed to find task: %w", err)
		}

		task.Name = in.Name
		task.Message = in.Message
		if in.Priority != nil {
			task.Priority = in.Priority
		}
		task.StartDate = in.StartDate
		task.FinishDate = in.FinishDate

		if in.Status != nil && in.Status.ID != 0 {
			status, err := statusRepo.FindByID(in.Status.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrStatusNotFound
				}
				return fmt.Errorf("failed to find status: %w", err)
			}
			task.StatusID = &status.ID
		}

		if in.ProjectID != 0 {
			project, err := projectRepo.FindByID(in.ProjectID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProjectNotFound
				}
				return fmt.Errorf("failed to find project: %w", err)
			}
			task.ProjectID = project.ID
		}

		if in.Stage != nil && in.Stage.ID != 0 {
			stage, err := stageRepo.FindByID(in.Stage.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrStageNotFound
				}
				return fmt.Errorf("failed to find stage: %w", err)
			}
			task.StageID = &stage.ID
		}

		if err := taskRepo.Save(task); err != nil {
			return err
		}

		// A members list in the payload replaces the member set; the author
		// is never touched on update.
		if in.Members != nil {
			memberIDs := make([]int64, len(in.Members))
			for i, m := range in.Members {
				memberIDs[i] = m.ID
			}
			var curatorID *int64
			if in.Curator != nil {
				curatorID = &in.Curator.ID
			}
			if err := s.replaceTaskMembers(taskRepo, taskID, curatorID, memberIDs); err != nil {
				return err
			}
		}

		updated, err := taskRepo.FindByID(taskID, repository.TaskDetailPreloads...)
		if err != nil {
			return fmt.Errorf("failed to reload task: %w", err)
		}
		result := dto.ToTaskDTO(*updated)
		out = &result
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("task updated", zap.Int64("task_id", taskID), zap.Int64("version", out.Version))
	return out, nil
}

// UpdateTaskPriorities assigns priority = 1-based position for the given
// ordered id sequence. Unknown ids are skipped with a warning; tasks not in
// the list keep their priority.
func (s *TaskService) UpdateTaskPriorities(taskIDs []int64) error {
	if len(taskIDs) == 0 {
		s.log.Warn("empty id list for priority update")
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		taskRepo := repository.NewTaskRepository(tx)

		tasks, err := taskRepo.FindAllByIDs(taskIDs)
		if err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}
		known := make(map[int64]struct{}, len(tasks))
		for _, t := range tasks {
			known[t.ID] = struct{}{}
		}

		for i, id := range taskIDs {
			if _, ok := known[id]; !ok {
				s.log.Warn("task not found during priority update, skipping",
					zap.Int64("task_id", id))
				continue
			}
			if err := taskRepo.UpdatePriority(id, i+1); err != nil {
				return fmt.Errorf("failed to update priority of task %d: %w", id, err)
			}
		}
		return nil
	})
}

// BatchUpdateTasks applies a list of partial status/priority updates as one
// unit. A single missing task or status aborts and rolls back the whole
// batch.
func (s *TaskService) BatchUpdateTasks(updates []dto.TaskBatchUpdateRequest) error {
	if len(updates) == 0 {
		s.log.Warn("empty list for batch task update")
		return nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taskRepo := repository.NewTaskRepository(tx)
		statusRepo := repository.NewStatusRepository(tx)

		for _, update := range updates {
			task, err := taskRepo.FindByID(update.TaskID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTaskNotFound
				}
				return fmt.Errorf("failed to find task %d: %w", update.TaskID, err)
			}

			if update.Priority != nil {
				task.Priority = update.Priority
			}

			if update.StatusID != nil && (task.StatusID == nil || *task.StatusID != *update.StatusID) {
				status, err := statusRepo.FindByID(*update.StatusID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrStatusNotFound
					}
					return fmt.Errorf("failed to find status %d: %w", *update.StatusID, err)
				}
				task.StatusID = &status.ID
			}

			if err := taskRepo.Save(task); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("batch task update completed", zap.Int("count", len(updates)))
	return nil
}

// UpdateTaskMembers replaces the curator (when given) and the full member
// set of a task.
func (s *TaskService) UpdateTaskMembers(taskID int64, curatorID *int64, memberIDs []int64, modifierName string) error {
	s.log.Info("replacing task members",
		zap.Int64("task_id", taskID),
		zap.String("modifier", modifierName),
		zap.Int64s("member_ids", memberIDs))

	return s.db.Transaction(func(tx *gorm.DB) error {
		taskRepo := repository.NewTaskRepository(tx)

		exists, err := taskRepo.Exists(taskID)
		if err != nil {
			return fmt.Errorf("failed to check task: %w", err)
		}
		if !exists {
			return ErrTaskNotFound
		}

		return s.replaceTaskMembers(taskRepo, taskID, curatorID, memberIDs)
	})
}

// DeleteTask removes a task together with the member links it owns.
func (s *TaskService) DeleteTask(taskID int64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		taskRepo := repository.NewTaskRepository(tx)

		exists, err := taskRepo.Exists(taskID)
		if err != nil {
			return fmt.Errorf("failed to check task: %w", err)
		}
		if !exists {
			return ErrTaskNotFound
		}

		// Member links first, the task owns them.
		if err := taskRepo.DeleteMembers(taskID); err != nil {
			return fmt.Errorf("failed to delete task members: %w", err)
		}
		if err := taskRepo.Delete(taskID); err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("task deleted", zap.Int64("task_id", taskID))
	return nil
}

// replaceTaskMembers performs the full member-set replace, updating the
// curator by explicit foreign key when a new one is given.
func (s *TaskService) replaceTaskMembers(taskRepo repository.TaskRepository, taskID int64, curatorID *int64, memberIDs []int64) error {
	if curatorID != nil {
		if err := taskRepo.SetCurator(taskID, *curatorID); err != nil {
			return fmt.Errorf("failed to set curator: %w", err)
		}
	}
	if err := taskRepo.ReplaceMembers(taskID, memberIDs); err != nil {
		return fmt.Errorf("failed to replace task members: %w", err)
	}
	return nil
}
