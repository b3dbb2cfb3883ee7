package repository

import "github.com/avigeya/projectboard/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by internal ID
	FindByID(id int64) (*models.User, error)

	// FindByTgUserID finds a user by their Telegram platform id
	FindByTgUserID(tgUserID int64) (*models.User, error)

	// FindAll lists every user
	FindAll() ([]models.User, error)
}

// ProjectRepository defines the interface for project data access,
// including the member and stage links a project owns.
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID
	FindByID(id int64) (*models.Project, error)

	// FindAll lists every project
	FindAll() ([]models.Project, error)

	// FindActiveMembershipsByUser lists active project memberships of a user,
	// project preloaded
	FindActiveMembershipsByUser(userID int64) ([]models.ProjectMember, error)

	// ListMembers lists every project-member link
	ListMembers() ([]models.ProjectMember, error)

	// ListStageLinks lists every project-stage link
	ListStageLinks() ([]models.ProjectStage, error)

	// ReplaceMembers deletes all member links of a project and inserts the
	// given user ids as active members
	ReplaceMembers(projectID int64, userIDs []int64) error

	// ReplaceStages deletes all stage links of a project and inserts the
	// given stage ids as active links
	ReplaceStages(projectID int64, stageIDs []int64) error

	// AddMember inserts a single member link (import path)
	AddMember(member *models.ProjectMember) error

	// AddStageLink inserts a single stage link (import path)
	AddStageLink(link *models.ProjectStage) error
}

// TaskRepository defines the interface for task data access. The task's
// member links are owned by the task and managed here.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id int64, preload ...string) (*models.Task, error)

	// FindAllByIDs finds the subset of the given ids that exist
	FindAllByIDs(ids []int64) ([]models.Task, error)

	// FindAllWithDetails lists every task with relations preloaded
	FindAllWithDetails() ([]models.Task, error)

	// FindByCuratorOrAuthor lists tasks where the user is curator or author,
	// relations preloaded
	FindByCuratorOrAuthor(userID int64) ([]models.Task, error)

	// FindByMember lists tasks reachable through a task-member link for the
	// user, relations preloaded
	FindByMember(userID int64) ([]models.Task, error)

	// Exists reports whether a task with the id exists
	Exists(id int64) (bool, error)

	// Save updates the task's fields guarded by the version it was read at;
	// returns ErrVersionConflict when a concurrent update won
	Save(task *models.Task) error

	// UpdatePriority sets only the priority of a task
	UpdatePriority(id int64, priority int) error

	// SetCurator reassigns the responsible user by explicit foreign key
	SetCurator(taskID, curatorID int64) error

	// ReplaceMembers deletes all member links of a task and inserts the
	// given user ids
	ReplaceMembers(taskID int64, userIDs []int64) error

	// DeleteMembers deletes all member links of a task
	DeleteMembers(taskID int64) error

	// Delete deletes a task row
	Delete(id int64) error

	// AddMember inserts a single task-member link (import path)
	AddMember(member *models.TaskMember) error
}

// StatusRepository defines the interface for the status reference table.
type StatusRepository interface {
	// Create creates a new status
	Create(status *models.Status) error

	// FindByID finds a status by ID
	FindByID(id int64) (*models.Status, error)

	// FindAllOrdered lists every status sorted by its order field
	FindAllOrdered() ([]models.Status, error)
}

// StageRepository defines the interface for the stage reference table.
type StageRepository interface {
	// Create creates a new stage
	Create(stage *models.Stage) error

	// FindByID finds a stage by ID
	FindByID(id int64) (*models.Stage, error)

	// FindAll lists every stage
	FindAll() ([]models.Stage, error)
}
