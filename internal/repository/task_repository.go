package repository

import (
	"errors"

	"github.com/avigeya/projectboard/internal/models"
	"gorm.io/gorm"
)

// ErrVersionConflict is returned when a guarded save hits a row whose
// version moved since it was read.
var ErrVersionConflict = errors.New("task repository: version conflict")

// TaskDetailPreloads are the relations a task detail view carries.
var TaskDetailPreloads = []string{"Status", "Stage", "Curator", "Author", "Members", "Members.User"}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id int64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindAllByIDs finds the subset of the given ids that exist
func (r *GormTaskRepository) FindAllByIDs(ids []int64) ([]models.Task, error) {
	var tasks []models.Task
	if len(ids) == 0 {
		return tasks, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindAllWithDetails lists every task with relations preloaded
func (r *GormTaskRepository) FindAllWithDetails() ([]models.Task, error) {
	var tasks []models.Task
	if err := r.withDetails().Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByCuratorOrAuthor lists tasks where the user is curator or author
func (r *GormTaskRepository) FindByCuratorOrAuthor(userID int64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.withDetails().
		Where("curator_id = ? OR author_id = ?", userID, userID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByMember lists tasks reachable through a task-member link for the user
func (r *GormTaskRepository) FindByMember(userID int64) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.withDetails().
		Joins("JOIN task_members ON task_members.task_id = tasks.id").
		Where("task_members.user_id = ?", userID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Exists reports whether a task with the id exists
func (r *GormTaskRepository) Exists(id int64) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save updates the task's mutable fields guarded by the version the task was
// read at, and advances the version in the same statement. The author never
// changes after creation and is deliberately left out.
func (r *GormTaskRepository) Save(task *models.Task) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"name":        task.Name,
			"message":     task.Message,
			"priority":    task.Priority,
			"start_date":  task.StartDate,
			"finish_date": task.FinishDate,
			"is_deleted":  task.Deleted,
			"status_id":   task.StatusID,
			"stage_id":    task.StageID,
			"project_id":  task.ProjectID,
			"version":     task.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	task.Version++
	return nil
}

// UpdatePriority sets only the priority of a task
func (r *GormTaskRepository) UpdatePriority(id int64, priority int) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).
		Update("priority", priority).Error
}

// SetCurator reassigns the responsible user by explicit foreign key
func (r *GormTaskRepository) SetCurator(taskID, curatorID int64) error {
	return r.db.Model(&models.Task{}).Where("id = ?", taskID).
		Update("curator_id", curatorID).Error
}

// ReplaceMembers replaces the member set of a task with the given user ids
func (r *GormTaskRepository) ReplaceMembers(taskID int64, userIDs []int64) error {
	if err := r.DeleteMembers(taskID); err != nil {
		return err
	}

	if len(userIDs) == 0 {
		return nil
	}

	members := make([]models.TaskMember, len(userIDs))
	for i, userID := range userIDs {
		members[i] = models.TaskMember{
			TaskID: taskID,
			UserID: userID,
		}
	}
	return r.db.Create(&members).Error
}

// DeleteMembers deletes all member links of a task
func (r *GormTaskRepository) DeleteMembers(taskID int64) error {
	return r.db.Where("task_id = ?", taskID).Delete(&models.TaskMember{}).Error
}

// Delete deletes a task row. Member links are owned by the task and must be
// removed first via DeleteMembers.
func (r *GormTaskRepository) Delete(id int64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// AddMember inserts a single task-member link
func (r *GormTaskRepository) AddMember(member *models.TaskMember) error {
	return r.db.Create(member).Error
}

func (r *GormTaskRepository) withDetails() *gorm.DB {
	query := r.db
	for _, p := range TaskDetailPreloads {
		query = query.Preload(p)
	}
	return query
}
