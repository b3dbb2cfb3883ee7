package services

import (
	"errors"
	"fmt"

	"github.com/avigeya/projectboard/internal/dto"
	"github.com/avigeya/projectboard/internal/models"
	"github.com/avigeya/projectboard/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// AppDataService assembles the one-shot snapshot the mini-app client boots
// from. It only reads; every query runs inside a single transaction.
type AppDataService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewAppDataService creates a new AppDataService.
func NewAppDataService(db *gorm.DB, log *zap.Logger) *AppDataService {
	return &AppDataService{db: db, log: log}
}

// GetAppData resolves the Telegram user id to an internal user, computes
// their visible scope and returns the snapshot. Tasks sitting in the
// terminal status (exact name match) are excluded from the visible task
// list; reference lists are returned unfiltered.
func (s *AppDataService) GetAppData(tgUserID int64) (*dto.AppData, error) {
	var appData *dto.AppData

	err := s.db.Transaction(func(tx *gorm.DB) error {
		userRepo := repository.NewUserRepository(tx)
		projectRepo := repository.NewProjectRepository(tx)
		taskRepo := repository.NewTaskRepository(tx)
		statusRepo := repository.NewStatusRepository(tx)
		stageRepo := repository.NewStageRepository(tx)

		user, err := userRepo.FindByTgUserID(tgUserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to find user: %w", err)
		}

		scope, err := NewAccessScopeResolver(projectRepo, taskRepo).Resolve(user)
		if err != nil {
			return err
		}

		taskDTOs := make([]dto.TaskDTO, 0, len(scope.Tasks))
		for _, task := range scope.Tasks {
			if task.Status == nil || task.Status.Name == models.StatusNameDone {
				continue
			}
			taskDTOs = append(taskDTOs, dto.ToTaskDTO(task))
		}

		projectDTOs := make([]dto.ProjectDTO, len(scope.Projects))
		for i, p := range scope.Projects {
			projectDTOs[i] = dto.ToProjectDTO(p)
		}

		allProjects, err := projectRepo.FindAll()
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}
		allUsers, err := userRepo.FindAll()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		allStatuses, err := statusRepo.FindAllOrdered()
		if err != nil {
			return fmt.Errorf("failed to list statuses: %w", err)
		}
		allStages, err := stageRepo.FindAll()
		if err != nil {
			return fmt.Errorf("failed to list stages: %w", err)
		}
		allMembers, err := projectRepo.ListMembers()
		if err != nil {
			return fmt.Errorf("failed to list project members: %w", err)
		}
		allStageLinks, err := projectRepo.ListStageLinks()
		if err != nil {
			return fmt.Errorf("failed to list project stages: %w", err)
		}

		appData = &dto.AppData{
			CurrentUserID:     user.ID,
			UserName:          user.Name,
			UserRole:          user.Role,
			Projects:          projectDTOs,
			Tasks:             taskDTOs,
			AllProjects:       convertProjects(allProjects),
			AllUsers:          convertUsers(allUsers),
			AllStatuses:       convertStatuses(allStatuses),
			AllStages:         convertStages(allStages),
			AllProjectMembers: convertProjectMembers(allMembers),
			AllProjectStages:  convertProjectStages(allStageLinks),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("assembled app data snapshot",
		zap.Int64("tg_user_id", tgUserID),
		zap.Int("visible_tasks", len(appData.Tasks)),
		zap.Int("visible_projects", len(appData.Projects)))

	return appData, nil
}

func convertProjects(projects []models.Project) []dto.ProjectDTO {
	out := make([]dto.ProjectDTO, len(projects))
	for i, p := range projects {
		out[i] = dto.ToProjectDTO(p)
	}
	return out
}

func convertUsers(users []models.User) []dto.UserDTO {
	out := make([]dto.UserDTO, len(users))
	for i, u := range users {
		out[i] = dto.ToUserDTO(u)
	}
	return out
}

func convertStatuses(statuses []models.Status) []dto.StatusDTO {
	out := make([]dto.StatusDTO, len(statuses))
	for i, s := range statuses {
		out[i] = dto.ToStatusDTO(s)
	}
	return out
}

func convertStages(stages []models.Stage) []dto.StageDTO {
	out := make([]dto.StageDTO, len(stages))
	for i, s := range stages {
		out[i] = dto.ToStageDTO(s)
	}
	return out
}

func convertProjectMembers(members []models.ProjectMember) []dto.ProjectMemberDTO {
	out := make([]dto.ProjectMemberDTO, len(members))
	for i, m := range members {
		out[i] = dto.ToProjectMemberDTO(m)
	}
	return out
}

func convertProjectStages(links []models.ProjectStage) []dto.ProjectStageDTO {
	out := make([]dto.ProjectStageDTO, len(links))
	for i, l := range links {
		out[i] = dto.ToProjectStageDTO(l)
	}
	return out
}
