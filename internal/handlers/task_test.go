package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avigeya/projectboard/internal/dto"
	"github.com/avigeya/projectboard/internal/models"
	"github.com/avigeya/projectboard/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Status{},
		&models.Stage{},
		&models.ProjectMember{},
		&models.ProjectStage{},
		&models.Task{},
		&models.TaskMember{},
	)
	suite.Require().NoError(err)

	handler := NewTaskHandler(services.NewTaskService(suite.db, zap.NewNop()), zap.NewNop())

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.PUT("/tasks/priorities", handler.UpdatePriorities)
	suite.router.PUT("/tasks/batch-update", handler.BatchUpdate)
	suite.router.PUT("/tasks/:id", handler.UpdateTask)
	suite.router.PUT("/tasks/:id/members", handler.UpdateMembers)
	suite.router.DELETE("/tasks/:id", handler.DeleteTask)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(name string) *models.User {
	user := &models.User{Name: name, Role: models.RoleMember}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskHandlerTestSuite) createTestProject(name string) *models.Project {
	project := &models.Project{Name: name}
	suite.Require().NoError(suite.db.Create(project).Error)
	return project
}

func (suite *TaskHandlerTestSuite) createTestStatus(name string, order int) *models.Status {
	status := &models.Status{Name: name, Order: order}
	suite.Require().NoError(suite.db.Create(status).Error)
	return status
}

func (suite *TaskHandlerTestSuite) createTestTask(name string, projectID, curatorID, authorID int64) *models.Task {
	task := &models.Task{
		Name:      name,
		ProjectID: projectID,
		CuratorID: curatorID,
		AuthorID:  authorID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func (suite *TaskHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskSuccess() {
	user := suite.createTestUser("Curator")
	project := suite.createTestProject("Board")
	status := suite.createTestStatus("В работе", 2)
	task := suite.createTestTask("Old name", project.ID, user.ID, user.ID)

	priority := 5
	body := dto.TaskDTO{
		Name:     "New name",
		Message:  "Updated details",
		Priority: &priority,
		Status:   &dto.StatusDTO{ID: status.ID},
	}

	w := suite.perform(http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), body)
	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Status  string      `json:"status"`
		Message string      `json:"message"`
		Data    dto.TaskDTO `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("success", resp.Status)
	suite.Equal("Task updated successfully", resp.Message)
	suite.Equal("New name", resp.Data.Name)
	suite.Equal(int64(1), resp.Data.Version)
	suite.Require().NotNil(resp.Data.Status)
	suite.Equal("В работе", resp.Data.Status.Name)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	suite.Equal("New name", stored.Name)
	suite.Equal(int64(1), stored.Version)
	suite.Require().NotNil(stored.Priority)
	suite.Equal(5, *stored.Priority)
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskUnknownStatus() {
	user := suite.createTestUser("Curator")
	project := suite.createTestProject("Board")
	task := suite.createTestTask("Task", project.ID, user.ID, user.ID)

	body := dto.TaskDTO{
		Name:   "Task",
		Status: &dto.StatusDTO{ID: 999},
	}

	w := suite.perform(http.MethodPut, fmt.Sprintf("/tasks/%d", task.ID), body)
	suite.Equal(http.StatusNotFound, w.Code)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	suite.Equal(int64(0), stored.Version)
}

func (suite *TaskHandlerTestSuite) TestUpdateTaskNotFound() {
	w := suite.perform(http.MethodPut, "/tasks/12345", dto.TaskDTO{Name: "x"})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdatePrioritiesReordersAndSkipsUnknown() {
	user := suite.createTestUser("Curator")
	project := suite.createTestProject("Board")
	first := suite.createTestTask("First", project.ID, user.ID, user.ID)
	second := suite.createTestTask("Second", project.ID, user.ID, user.ID)
	third := suite.createTestTask("Third", project.ID, user.ID, user.ID)

	w := suite.perform(http.MethodPut, "/tasks/priorities", []int64{third.ID, 999, first.ID})
	suite.Equal(http.StatusOK, w.Code)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, third.ID).Error)
	suite.Require().NotNil(stored.Priority)
	suite.Equal(1, *stored.Priority)

	stored = models.Task{}
	suite.Require().NoError(suite.db.First(&stored, first.ID).Error)
	suite.Require().NotNil(stored.Priority)
	suite.Equal(3, *stored.Priority)

	// not in the list, priority untouched
	stored = models.Task{}
	suite.Require().NoError(suite.db.First(&stored, second.ID).Error)
	suite.Nil(stored.Priority)
}

func (suite *TaskHandlerTestSuite) TestBatchUpdateAppliesStatusAndPriority() {
	user := suite.createTestUser("Curator")
	project := suite.createTestProject("Board")
	status := suite.createTestStatus("В работе", 2)
	task := suite.createTestTask("Task", project.ID, user.ID, user.ID)

	priority := 7
	w := suite.perform(http.MethodPut, "/tasks/batch-update", []dto.TaskBatchUpdateRequest{
		{TaskID: task.ID, Priority: &priority, StatusID: &status.ID},
	})
	suite.Equal(http.StatusOK, w.Code)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	suite.Require().NotNil(stored.StatusID)
	suite.Equal(status.ID, *stored.StatusID)
	suite.Require().NotNil(stored.Priority)
	suite.Equal(7, *stored.Priority)
	suite.Equal(int64(1), stored.Version)
}

func (suite *TaskHandlerTestSuite) TestBatchUpdateRollsBackOnUnknownStatus() {
	user := suite.createTestUser("Curator")
	project := suite.createTestProject("Board")
	good := suite.createTestTask("Good", project.ID, user.ID, user.ID)
	bad := suite.createTestTask("Bad", project.ID, user.ID, user.ID)

	priority := 1
	missingStatus := int64(999)
	w := suite.perform(http.MethodPut, "/tasks/batch-update", []dto.TaskBatchUpdateRequest{
		{TaskID: good.ID, Priority: &priority},
		{TaskID: bad.ID, StatusID: &missingStatus},
	})
	suite.Equal(http.StatusNotFound, w.Code)

	// the first update must not survive the rollback
	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, good.ID).Error)
	suite.Nil(stored.Priority)
	suite.Equal(int64(0), stored.Version)
}

func (suite *TaskHandlerTestSuite) TestUpdateMembersReplacesSet() {
	author := suite.createTestUser("Author")
	oldMember := suite.createTestUser("Old member")
	newMember := suite.createTestUser("New member")
	newCurator := suite.createTestUser("New curator")
	project := suite.createTestProject("Board")
	task := suite.createTestTask("Task", project.ID, author.ID, author.ID)
	suite.Require().NoError(suite.db.Create(&models.TaskMember{TaskID: task.ID, UserID: oldMember.ID}).Error)

	body := dto.TaskMemberUpdateRequest{
		CuratorID:    &newCurator.ID,
		MemberIDs:    []int64{newMember.ID},
		ModifierName: "Author",
	}
	w := suite.perform(http.MethodPut, fmt.Sprintf("/tasks/%d/members", task.ID), body)
	suite.Equal(http.StatusOK, w.Code)

	var members []models.TaskMember
	suite.Require().NoError(suite.db.Where("task_id = ?", task.ID).Find(&members).Error)
	suite.Require().Len(members, 1)
	suite.Equal(newMember.ID, members[0].UserID)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	suite.Equal(newCurator.ID, stored.CuratorID)
	suite.Equal(author.ID, stored.AuthorID)
}

func (suite *TaskHandlerTestSuite) TestUpdateMembersUnknownTask() {
	w := suite.perform(http.MethodPut, "/tasks/999/members", dto.TaskMemberUpdateRequest{})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteTaskRemovesMemberLinks() {
	user := suite.createTestUser("Curator")
	member := suite.createTestUser("Member")
	project := suite.createTestProject("Board")
	task := suite.createTestTask("Task", project.ID, user.ID, user.ID)
	suite.Require().NoError(suite.db.Create(&models.TaskMember{TaskID: task.ID, UserID: member.ID}).Error)

	w := suite.perform(http.MethodDelete, fmt.Sprintf("/tasks/%d", task.ID), nil)
	suite.Equal(http.StatusNoContent, w.Code)

	var taskCount, memberCount int64
	suite.Require().NoError(suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&taskCount).Error)
	suite.Require().NoError(suite.db.Model(&models.TaskMember{}).Where("task_id = ?", task.ID).Count(&memberCount).Error)
	suite.Equal(int64(0), taskCount)
	suite.Equal(int64(0), memberCount)

	// deleting again reports not found
	w = suite.perform(http.MethodDelete, fmt.Sprintf("/tasks/%d", task.ID), nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestInvalidID() {
	w := suite.perform(http.MethodPut, "/tasks/abc", dto.TaskDTO{Name: "x"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
