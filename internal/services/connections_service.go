package services

import (
	"fmt"

	"github.com/avigeya/projectboard/internal/dto"
	"github.com/avigeya/projectboard/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConnectionsService exposes the raw link tables (project-member and
// project-stage) for admin tooling.
type ConnectionsService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewConnectionsService creates a new ConnectionsService.
func NewConnectionsService(db *gorm.DB, log *zap.Logger) *ConnectionsService {
	return &ConnectionsService{db: db, log: log}
}

// GetAllConnections returns every project-member and project-stage link.
func (s *ConnectionsService) GetAllConnections() (*dto.Connections, error) {
	projectRepo := repository.NewProjectRepository(s.db)

	members, err := projectRepo.ListMembers()
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	stageLinks, err := projectRepo.ListStageLinks()
	if err != nil {
		return nil, fmt.Errorf("failed to list project stages: %w", err)
	}

	s.log.Debug("listed connections",
		zap.Int("project_members", len(members)),
		zap.Int("project_stages", len(stageLinks)))

	return &dto.Connections{
		ProjectMembers: convertProjectMembers(members),
		ProjectStages:  convertProjectStages(stageLinks),
	}, nil
}
