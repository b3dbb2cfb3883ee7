package dto

import (
	"time"

	"github.com/avigeya/projectboard/internal/models"
)

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID   int64       `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role,omitempty"`
}

// StatusDTO represents a board column in API responses.
type StatusDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Order int    `json:"order"`
}

// StageDTO represents a pipeline stage in API responses.
type StageDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProjectDTO represents a project summary in API responses.
type ProjectDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TaskDTO represents a task in API responses. It doubles as the body of the
// task update request: the version field is output-only and never applied
// from client input.
type TaskDTO struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Message    string     `json:"message"`
	Priority   *int       `json:"priority"`
	StartDate  *time.Time `json:"startDate"`
	FinishDate *time.Time `json:"finishDate"`
	Version    int64      `json:"version"`
	ProjectID  int64      `json:"projectId"`
	Status     *StatusDTO `json:"status,omitempty"`
	Stage      *StageDTO  `json:"stage,omitempty"`
	Curator    *UserDTO   `json:"curator,omitempty"`
	Author     *UserDTO   `json:"author,omitempty"`
	Members    []UserDTO  `json:"members,omitempty"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO.
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role,
	}
}

// ToStatusDTO converts a Status model to StatusDTO.
func ToStatusDTO(status models.Status) StatusDTO {
	return StatusDTO{
		ID:    status.ID,
		Name:  status.Name,
		Icon:  status.Icon,
		Order: status.Order,
	}
}

// ToStageDTO converts a Stage model to StageDTO.
func ToStageDTO(stage models.Stage) StageDTO {
	return StageDTO{
		ID:          stage.ID,
		Name:        stage.Name,
		Description: stage.Description,
	}
}

// ToProjectDTO converts a Project model to ProjectDTO.
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:   project.ID,
		Name: project.Name,
	}
}

// ToTaskDTO converts a Task model to TaskDTO.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:         task.ID,
		Name:       task.Name,
		Message:    task.Message,
		Priority:   task.Priority,
		StartDate:  task.StartDate,
		FinishDate: task.FinishDate,
		Version:    task.Version,
		ProjectID:  task.ProjectID,
	}

	if task.Status != nil {
		status := ToStatusDTO(*task.Status)
		dto.Status = &status
	}
	if task.Stage != nil {
		stage := ToStageDTO(*task.Stage)
		dto.Stage = &stage
	}

	// Curator and author are included only when preloaded.
	if task.Curator.ID != 0 {
		curator := ToUserDTO(task.Curator)
		dto.Curator = &curator
	}
	if task.Author.ID != 0 {
		author := ToUserDTO(task.Author)
		dto.Author = &author
	}

	if len(task.Members) > 0 {
		dto.Members = make([]UserDTO, len(task.Members))
		for i, member := range task.Members {
			dto.Members[i] = ToUserDTO(member.User)
		}
	}

	return dto
}
