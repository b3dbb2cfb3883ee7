package services

import (
	"fmt"

	"github.com/avigeya/projectboard/internal/models"
	"github.com/avigeya/projectboard/internal/repository"
)

// Scope is the set of projects and tasks a given identity is authorized to
// see. Tasks are deduplicated by id.
type Scope struct {
	Projects []models.Project
	Tasks    []models.Task
}

// AccessScopeResolver computes the visible scope for an authenticated user.
type AccessScopeResolver struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewAccessScopeResolver creates a new AccessScopeResolver.
func NewAccessScopeResolver(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *AccessScopeResolver {
	return &AccessScopeResolver{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// Resolve returns the user's visible projects and tasks. Privileged roles
// see everything; everyone else sees projects with an active membership and
// the union of tasks they curate, authored, or are a member of. A user with
// no memberships gets empty sets, not an error.
func (r *AccessScopeResolver) Resolve(user *models.User) (*Scope, error) {
	if user.Role.Privileged() {
		projects, err := r.projectRepo.FindAll()
		if err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}
		tasks, err := r.taskRepo.FindAllWithDetails()
		if err != nil {
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		return &Scope{Projects: projects, Tasks: tasks}, nil
	}

	memberships, err := r.projectRepo.FindActiveMembershipsByUser(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project memberships: %w", err)
	}
	projects := make([]models.Project, 0, len(memberships))
	for _, m := range memberships {
		projects = append(projects, m.Project)
	}

	ownTasks, err := r.taskRepo.FindByCuratorOrAuthor(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list curated/authored tasks: %w", err)
	}
	memberTasks, err := r.taskRepo.FindByMember(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member tasks: %w", err)
	}

	// A task can match several predicates; keep the first occurrence only.
	seen := make(map[int64]struct{}, len(ownTasks)+len(memberTasks))
	tasks := make([]models.Task, 0, len(ownTasks)+len(memberTasks))
	for _, t := range append(ownTasks, memberTasks...) {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		tasks = append(tasks, t)
	}

	return &Scope{Projects: projects, Tasks: tasks}, nil
}
