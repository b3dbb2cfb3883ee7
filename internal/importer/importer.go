// Package importer loads a board snapshot exported as CSV sheets into an
// empty database. Rows with broken numbers or dangling references are
// skipped with a warning rather than aborting the whole import.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avigeya/projectboard/internal/models"
	"github.com/avigeya/projectboard/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Sheet file names as exported from the spreadsheet.
const (
	usersFile          = "AvigeyaProjectDataBase-Users.csv"
	projectsFile       = "AvigeyaProjectDataBase-Projects.csv"
	statusesFile       = "AvigeyaProjectDataBase-Statuses.csv"
	stagesFile         = "AvigeyaProjectDataBase-Stages.csv"
	projectStagesFile  = "AvigeyaProjectDataBase-ProjectStages.csv"
	tasksFile          = "AvigeyaProjectDataBase-Tasks.csv"
	projectMembersFile = "AvigeyaProjectDataBase-ProjectMembers.csv"
	taskMembersFile    = "AvigeyaProjectDataBase-TaskMembers.csv"
)

// Importer reads the CSV sheets from a directory and writes them in one
// transaction. Sheet ids are remapped to freshly assigned database ids.
type Importer struct {
	db  *gorm.DB
	log *zap.Logger
	dir string

	userIDs    map[int64]int64
	projectIDs map[int64]int64
	statusIDs  map[int64]int64
	stageIDs   map[int64]int64
	taskIDs    map[int64]int64
}

// New creates an Importer reading sheets from dir.
func New(db *gorm.DB, log *zap.Logger, dir string) *Importer {
	return &Importer{
		db:         db,
		log:        log,
		dir:        dir,
		userIDs:    make(map[int64]int64),
		projectIDs: make(map[int64]int64),
		statusIDs:  make(map[int64]int64),
		stageIDs:   make(map[int64]int64),
		taskIDs:    make(map[int64]int64),
	}
}

// Run performs the import. It is a no-op when the database already holds
// users, so a restart never duplicates data.
func (im *Importer) Run() error {
	return im.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		if count > 0 {
			im.log.Warn("database already holds data, import skipped")
			return nil
		}

		im.log.Info("starting CSV import", zap.String("dir", im.dir))

		steps := []struct {
			name string
			run  func(tx *gorm.DB) error
		}{
			{usersFile, im.loadUsers},
			{projectsFile, im.loadProjects},
			{statusesFile, im.loadStatuses},
			{stagesFile, im.loadStages},
			{projectStagesFile, im.loadProjectStages},
			{tasksFile, im.loadTasks},
			{projectMembersFile, im.loadProjectMembers},
			{taskMembersFile, im.loadTaskMembers},
		}
		for _, step := range steps {
			if err := step.run(tx); err != nil {
				return fmt.Errorf("import of %s failed: %w", step.name, err)
			}
		}

		im.log.Info("CSV import completed")
		return nil
	})
}

// readSheet reads a CSV file, drops the header row and returns the records.
// Rows may have varying field counts.
func (im *Importer) readSheet(name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(im.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return r.ReadAll()
}

func (im *Importer) loadUsers(tx *gorm.DB) error {
	rows, err := im.readSheet(usersFile)
	if err != nil {
		return err
	}
	userRepo := repository.NewUserRepository(tx)

	for _, row := range rows {
		if len(row) < 2 || row[0] == "" {
			continue
		}
		oldID, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.log.Warn("skipping user row with bad id", zap.String("id", row[0]))
			continue
		}

		user := models.User{Name: row[1]}
		if len(row) > 4 {
			user.Role = models.Role(row[4])
		}
		if len(row) > 3 && row[3] != "" {
			tgID, err := strconv.ParseInt(row[3], 10, 64)
			if err != nil {
				im.log.Warn("unreadable tg_user_id",
					zap.String("value", row[3]), zap.String("user", row[1]))
			} else {
				user.TgUserID = &tgID
			}
		}
		if len(row) > 5 && row[5] != "" {
			user.Description = row[5]
		}

		if err := userRepo.Create(&user); err != nil {
			return err
		}
		im.userIDs[oldID] = user.ID
	}
	return nil
}

func (im *Importer) loadProjects(tx *gorm.DB) error {
	rows, err := im.readSheet(projectsFile)
	if err != nil {
		return err
	}
	projectRepo := repository.NewProjectRepository(tx)

	for _, row := range rows {
		if len(row) < 2 || row[0] == "" {
			continue
		}
		oldID, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.log.Warn("skipping project row with bad id", zap.String("id", row[0]))
			continue
		}

		project := models.Project{Name: row[1]}
		if len(row) > 2 && row[2] != "" {
			project.Description = row[2]
		}

		if err := projectRepo.Create(&project); err != nil {
			return err
		}
		im.projectIDs[oldID] = project.ID
	}
	return nil
}

func (im *Importer) loadStatuses(tx *gorm.DB) error {
	rows, err := im.readSheet(statusesFile)
	if err != nil {
		return err
	}
	statusRepo := repository.NewStatusRepository(tx)

	for _, row := range rows {
		if len(row) < 2 || row[0] == "" {
			continue
		}
		oldID, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.log.Warn("skipping status row with bad id", zap.String("id", row[0]))
			continue
		}

		status := models.Status{Name: row[1]}
		if len(row) > 2 && row[2] != "" {
			status.Icon = row[2]
		}
		if len(row) > 3 && row[3] != "" {
			order, err := strconv.Atoi(row[3])
			if err != nil {
				im.log.Warn("unreadable status order",
					zap.String("value", row[3]), zap.String("status", row[1]))
			} else {
				status.Order = order
			}
		}

		if err := statusRepo.Create(&status); err != nil {
			return err
		}
		im.statusIDs[oldID] = status.ID
	}
	return nil
}

func (im *Importer) loadStages(tx *gorm.DB) error {
	rows, err := im.readSheet(stagesFile)
	if err != nil {
		return err
	}
	stageRepo := repository.NewStageRepository(tx)

	for _, row := range rows {
		if len(row) < 2 || row[0] == "" {
			continue
		}
		oldID, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.log.Warn("skipping stage row with bad id", zap.String("id", row[0]))
			continue
		}

		stage := models.Stage{Name: row[1]}
		if len(row) > 2 && row[2] != "" {
			stage.Description = row[2]
		}

		if err := stageRepo.Create(&stage); err != nil {
			return err
		}
		im.stageIDs[oldID] = stage.ID
	}
	return nil
}

func (im *Importer) loadProjectStages(tx *gorm.DB) error {
	rows, err := im.readSheet(projectStagesFile)
	if err != nil {
		return err
	}
	projectRepo := repository.NewProjectRepository(tx)

	for _, row := range rows {
		if len(row) < 4 || row[1] == "" || row[2] == "" {
			continue
		}
		oldProjectID, err1 := strconv.ParseInt(row[1], 10, 64)
		oldStageID, err2 := strconv.ParseInt(row[2], 10, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		isActive, _ := strconv.ParseBool(row[3])

		projectID, okP := im.projectIDs[oldProjectID]
		stageID, okS := im.stageIDs[oldStageID]
		if !okP || !okS {
			im.log.Warn("skipping project-stage link with dangling reference",
				zap.Int64("project", oldProjectID), zap.Int64("stage", oldStageID))
			continue
		}

		link := models.ProjectStage{
			ProjectID: projectID,
			StageID:   stageID,
			IsActive:  isActive,
		}
		if err := projectRepo.AddStageLink(&link); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) loadTasks(tx *gorm.DB) error {
	rows, err := im.readSheet(tasksFile)
	if err != nil {
		return err
	}
	taskRepo := repository.NewTaskRepository(tx)

	for i, row := range rows {
		// header row already consumed, sheet rows start at line 2
		lineNumber := i + 2
		if len(row) < 8 {
			continue
		}
		oldID, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			im.log.Error("unreadable task id, row skipped", zap.Int("line", lineNumber))
			continue
		}

		task := models.Task{Name: row[1]}

		ok := true
		resolve := func(raw string, ids map[int64]int64) (int64, bool) {
			old, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return 0, false
			}
			id, found := ids[old]
			return id, found
		}

		if row[2] != "" {
			if id, found := resolve(row[2], im.stageIDs); found {
				task.StageID = &id
			}
		}
		if row[3] != "" {
			if id, found := resolve(row[3], im.projectIDs); found {
				task.ProjectID = id
			} else {
				ok = false
			}
		} else {
			ok = false
		}
		if row[4] != "" {
			if id, found := resolve(row[4], im.userIDs); found {
				task.CuratorID = id
			} else {
				ok = false
			}
		} else {
			ok = false
		}
		if row[5] != "" {
			if id, found := resolve(row[5], im.statusIDs); found {
				task.StatusID = &id
			}
		}
		if row[7] != "" {
			if id, found := resolve(row[7], im.userIDs); found {
				task.AuthorID = id
			} else {
				ok = false
			}
		} else {
			ok = false
		}

		if row[6] != "" {
			priority, err := strconv.Atoi(row[6])
			if err != nil {
				im.log.Error("unreadable priority, row skipped", zap.Int("line", lineNumber))
				continue
			}
			task.Priority = &priority
		}

		if len(row) > 9 && row[9] != "" {
			if start, err := time.Parse(dateLayout, row[9]); err != nil {
				im.log.Warn("unreadable start date",
					zap.String("value", row[9]), zap.String("task", row[1]))
			} else {
				task.StartDate = &start
			}
		}
		if len(row) > 10 && row[10] != "" {
			if finish, err := time.Parse(dateLayout, row[10]); err != nil {
				im.log.Warn("unreadable finish date",
					zap.String("value", row[10]), zap.String("task", row[1]))
			} else {
				task.FinishDate = &finish
			}
		}
		if len(row) > 11 && row[11] != "" {
			task.Deleted, _ = strconv.ParseBool(row[11])
		}

		if !ok {
			im.log.Warn("skipping task with dangling reference",
				zap.String("task", row[1]), zap.Int("line", lineNumber))
			continue
		}

		if err := taskRepo.Create(&task); err != nil {
			return err
		}
		im.taskIDs[oldID] = task.ID
	}
	return nil
}

func (im *Importer) loadProjectMembers(tx *gorm.DB) error {
	rows, err := im.readSheet(projectMembersFile)
	if err != nil {
		return err
	}
	projectRepo := repository.NewProjectRepository(tx)

	for _, row := range rows {
		if len(row) < 3 || row[1] == "" || row[2] == "" {
			continue
		}
		oldProjectID, err1 := strconv.ParseInt(row[1], 10, 64)
		oldUserID, err2 := strconv.ParseInt(row[2], 10, 64)
		if err1 != nil || err2 != nil {
			continue
		}

		projectID, okP := im.projectIDs[oldProjectID]
		userID, okU := im.userIDs[oldUserID]
		if !okP || !okU {
			im.log.Warn("skipping project member with dangling reference",
				zap.Int64("project", oldProjectID), zap.Int64("user", oldUserID))
			continue
		}

		member := models.ProjectMember{
			ProjectID: projectID,
			UserID:    userID,
		}
		if len(row) > 4 && row[4] != "" {
			member.IsActive, _ = strconv.ParseBool(row[4])
		}

		if err := projectRepo.AddMember(&member); err != nil {
			return err
		}
	}
	return nil
}

func (im *Importer) loadTaskMembers(tx *gorm.DB) error {
	rows, err := im.readSheet(taskMembersFile)
	if err != nil {
		return err
	}
	taskRepo := repository.NewTaskRepository(tx)

	for _, row := range rows {
		if len(row) < 3 || row[1] == "" || row[2] == "" {
			continue
		}
		oldTaskID, err1 := strconv.ParseInt(row[1], 10, 64)
		oldUserID, err2 := strconv.ParseInt(row[2], 10, 64)
		if err1 != nil || err2 != nil {
			continue
		}

		taskID, okT := im.taskIDs[oldTaskID]
		userID, okU := im.userIDs[oldUserID]
		if !okT || !okU {
			im.log.Warn("skipping task member with dangling reference",
				zap.Int64("task", oldTaskID), zap.Int64("user", oldUserID))
			continue
		}

		member := models.TaskMember{
			TaskID: taskID,
			UserID: userID,
		}
		if err := taskRepo.AddMember(&member); err != nil {
			return err
		}
	}
	return nil
}
