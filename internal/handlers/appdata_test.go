package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"

	"github.com/avigeya/projectboard/internal/auth"
	"github.com/avigeya/projectboard/internal/dto"
	"github.com/avigeya/projectboard/internal/models"
	"github.com/avigeya/projectboard/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testBotToken = "110201543:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw"

// AppDataHandlerTestSuite defines the test suite for AppDataHandler
type AppDataHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *AppDataHandlerTestSuite) SetupTest() {
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

	service := services.NewAppDataService(suite.db, zap.NewNop())
	authenticator := auth.New(testBotToken, true)
	handler := NewAppDataHandler(authenticator, service, zap.NewNop())

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.POST("/app-data", handler.GetAppData)
}

// TearDownTest runs after each test
func (suite *AppDataHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AppDataHandlerTestSuite) createTestUser(name string, role models.Role, tgUserID int64) *models.User {
	user := &models.User{Name: name, Role: role, TgUserID: &tgUserID}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *AppDataHandlerTestSuite) perform(body dto.AppDataRequest) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	suite.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, "/app-data", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// signInitData builds a raw init data string with a valid hash over the
// given fields.
func signInitData(fields map[string]string, botToken string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	hash := hex.EncodeToString(mac.Sum(nil))

	var raw strings.Builder
	for _, k := range keys {
		raw.WriteString(url.QueryEscape(k))
		raw.WriteString("=")
		raw.WriteString(url.QueryEscape(fields[k]))
		raw.WriteString("&")
	}
	raw.WriteString("hash=" + hash)
	return raw.String()
}

func (suite *AppDataHandlerTestSuite) TestDebugUserReturnsSnapshot() {
	user := suite.createTestUser("Анна", models.RoleAdmin, 42)

	w := suite.perform(dto.AppDataRequest{DebugUserID: user.TgUserID})
	suite.Equal(http.StatusOK, w.Code)

	var appData dto.AppData
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &appData))
	suite.Equal(user.ID, appData.CurrentUserID)
	suite.Equal("Анна", appData.UserName)
	suite.Equal(models.RoleAdmin, appData.UserRole)
}

func (suite *AppDataHandlerTestSuite) TestDoneTasksExcludedByExactName() {
	user := suite.createTestUser("Босс", models.RoleOwner, 42)
	project := &models.Project{Name: "Board"}
	suite.Require().NoError(suite.db.Create(project).Error)

	done := &models.Status{Name: models.StatusNameDone, Order: 9}
	lower := &models.Status{Name: strings.ToLower(models.StatusNameDone), Order: 10}
	padded := &models.Status{Name: models.StatusNameDone + " ", Order: 11}
	for _, s := range []*models.Status{done, lower, padded} {
		suite.Require().NoError(suite.db.Create(s).Error)
	}

	newTask := func(name string, statusID *int64) {
		task := &models.Task{
			Name:      name,
			StatusID:  statusID,
			ProjectID: project.ID,
			CuratorID: user.ID,
			AuthorID:  user.ID,
		}
		suite.Require().NoError(suite.db.Create(task).Error)
	}
	newTask("finished", &done.ID)
	newTask("lowercase status", &lower.ID)
	newTask("padded status", &padded.ID)
	newTask("no status", nil)

	w := suite.perform(dto.AppDataRequest{DebugUserID: user.TgUserID})
	suite.Equal(http.StatusOK, w.Code)

	var appData dto.AppData
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &appData))

	names := make([]string, len(appData.Tasks))
	for i, t := range appData.Tasks {
		names[i] = t.Name
	}
	// only the exact status name and the missing status drop the task
	suite.ElementsMatch([]string{"lowercase status", "padded status"}, names)
}

func (suite *AppDataHandlerTestSuite) TestBadSignatureIsForbidden() {
	suite.createTestUser("Анна", models.RoleMember, 42)

	raw := signInitData(map[string]string{"id": "42"}, testBotToken)
	tampered := strings.Replace(raw, "id=42", "id=43", 1)

	w := suite.perform(dto.AppDataRequest{InitData: tampered})
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AppDataHandlerTestSuite) TestEmptyRequestIsBadRequest() {
	w := suite.perform(dto.AppDataRequest{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AppDataHandlerTestSuite) TestUnknownUserIsBadRequest() {
	unknown := int64(777)
	w := suite.perform(dto.AppDataRequest{DebugUserID: &unknown})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AppDataHandlerTestSuite) TestValidInitDataReturnsSnapshot() {
	user := suite.createTestUser("Анна", models.RoleMember, 42)

	raw := signInitData(map[string]string{
		"id":        "42",
		"auth_date": "1700000000",
		"user":      `{"id":42,"first_name":"Анна"}`,
	}, testBotToken)

	w := suite.perform(dto.AppDataRequest{InitData: raw})
	suite.Equal(http.StatusOK, w.Code)

	var appData dto.AppData
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &appData))
	suite.Equal(user.ID, appData.CurrentUserID)
}

func TestAppDataHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AppDataHandlerTestSuite))
}
