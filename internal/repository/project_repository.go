package repository

import (
	"github.com/avigeya/projectboard/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(id int64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindAll lists every project
func (r *GormProjectRepository) FindAll() ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// FindActiveMembershipsByUser lists active project memberships of a user
func (r *GormProjectRepository) FindActiveMembershipsByUser(userID int64) ([]models.ProjectMember, error) {
	var memberships []models.ProjectMember
	if err := r.db.Preload("Project").
		Where("user_id = ? AND is_active = ?", userID, true).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists every project-member link
func (r *GormProjectRepository) ListMembers() ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	if err := r.db.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListStageLinks lists every project-stage link
func (r *GormProjectRepository) ListStageLinks() ([]models.ProjectStage, error) {
	var links []models.ProjectStage
	if err := r.db.Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// ReplaceMembers replaces the member set of a project with the given user
// ids. Full replace, not a diff: old links go away even if resubmitted.
func (r *GormProjectRepository) ReplaceMembers(projectID int64, userIDs []int64) error {
	if err := r.db.Where("project_id = ?", projectID).
		Delete(&models.ProjectMember{}).Error; err != nil {
		return err
	}

	if len(userIDs) == 0 {
		return nil
	}

	members := make([]models.ProjectMember, len(userIDs))
	for i, userID := range userIDs {
		members[i] = models.ProjectMember{
			ProjectID: projectID,
			UserID:    userID,
			IsActive:  true,
		}
	}
	return r.db.Create(&members).Error
}

// ReplaceStages replaces the stage links of a project with the given stage ids
func (r *GormProjectRepository) ReplaceStages(projectID int64, stageIDs []int64) error {
	if err := r.db.Where("project_id = ?", projectID).
		Delete(&models.ProjectStage{}).Error; err != nil {
		return err
	}

	if len(stageIDs) == 0 {
		return nil
	}

	links := make([]models.ProjectStage, len(stageIDs))
	for i, stageID := range stageIDs {
		links[i] = models.ProjectStage{
			ProjectID: projectID,
			StageID:   stageID,
			IsActive:  true,
		}
	}
	return r.db.Create(&links).Error
}

// AddMember inserts a single member link
func (r *GormProjectRepository) AddMember(member *models.ProjectMember) error {
	return r.db.Create(member).Error
}

// AddStageLink inserts a single stage link
func (r *GormProjectRepository) AddStageLink(link *models.ProjectStage) error {
	return r.db.Create(link).Error
}
