package dto

import "github.com/avigeya/projectboard/internal/models"

// ProjectMemberDTO represents a project/user visibility link.
type ProjectMemberDTO struct {
	ID        int64 `json:"id"`
	ProjectID int64 `json:"projectId"`
	UserID    int64 `json:"userId"`
	IsActive  bool  `json:"isActive"`
}

// ProjectStageDTO represents a project/stage link.
type ProjectStageDTO struct {
	ID        int64 `json:"id"`
	ProjectID int64 `json:"projectId"`
	StageID   int64 `json:"stageId"`
	IsActive  bool  `json:"isActive"`
}

// AppData is the one-shot snapshot the mini-app client boots from: the
// authenticated user, their visible projects and tasks, and the full
// reference tables the UI needs to render pickers and board columns.
type AppData struct {
	CurrentUserID int64       `json:"currentUserId"`
	UserName      string      `json:"userName"`
	UserRole      models.Role `json:"userRole"`

	Projects []ProjectDTO `json:"projects"`
	Tasks    []TaskDTO    `json:"tasks"`

	AllProjects       []ProjectDTO       `json:"allProjects"`
	AllUsers          []UserDTO          `json:"allUsers"`
	AllStatuses       []StatusDTO        `json:"allStatuses"`
	AllStages         []StageDTO         `json:"allStages"`
	AllProjectMembers []ProjectMemberDTO `json:"allProjectMembers"`
	AllProjectStages  []ProjectStageDTO  `json:"allProjectStages"`
}

// Connections bundles every project-member and project-stage link.
type Connections struct {
	ProjectMembers []ProjectMemberDTO `json:"projectMembers"`
	ProjectStages  []ProjectStageDTO  `json:"projectStages"`
}

// ToProjectMemberDTO converts a ProjectMember model to its DTO.
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		ID:        member.ID,
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		IsActive:  member.IsActive,
	}
}

// ToProjectStageDTO converts a ProjectStage model to its DTO.
func ToProjectStageDTO(link models.ProjectStage) ProjectStageDTO {
	return ProjectStageDTO{
		ID:        link.ID,
		ProjectID: link.ProjectID,
		StageID:   link.StageID,
		IsActive:  link.IsActive,
	}
}
