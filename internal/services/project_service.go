package services

import (
	"errors"
	"fmt"

	"github.com/avigeya/projectboard/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProjectService handles project composition: which stages a board shows and
// which users belong to it.
type ProjectService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *gorm.DB, log *zap.Logger) *ProjectService {
	return &ProjectService{db: db, log: log}
}

// UpdateProjectStages replaces the stage set linked to a project. The given
// list is the complete new set; an empty list clears it.
func (s *ProjectService) UpdateProjectStages(projectID int64, stageIDs []int64) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		projectRepo := repository.NewProjectRepository(tx)

		if _, err := projectRepo.FindByID(projectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("failed to find project: %w", err)
		}

		if err := projectRepo.ReplaceStages(projectID, stageIDs); err != nil {
			return fmt.Errorf("failed to replace project stages: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("project stages replaced",
		zap.Int64("project_id", projectID),
		zap.Int64s("stage_ids", stageIDs))
	return nil
}

// UpdateProjectMembers replaces the member set of a project with the given
// user ids.
func (s *ProjectService) UpdateProjectMembers(projectID int64, memberIDs []int64, modifierName string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		projectRepo := repository.NewProjectRepository(tx)

		if _, err := projectRepo.FindByID(projectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("failed to find project: %w", err)
		}

		if err := projectRepo.ReplaceMembers(projectID, memberIDs); err != nil {
			return fmt.Errorf("failed to replace project members: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("project members replaced",
		zap.Int64("project_id", projectID),
		zap.String("modifier", modifierName),
		zap.Int64s("member_ids", memberIDs))
	return nil
}
