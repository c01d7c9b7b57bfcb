package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/promanage/promanage-api/internal/constants"
	"github.com/promanage/promanage-api/internal/models"
	"github.com/promanage/promanage-api/internal/repository"
	"github.com/promanage/promanage-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *services.TaskService
	handler *TaskHandler

	owner    *models.User
	assignee *models.User
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.ChecklistItem{},
	)
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.service = services.NewTaskService(taskRepo, userRepo)
	suite.handler = NewTaskHandler(suite.service)

	gin.SetMode(gin.TestMode)

	suite.owner = suite.createTestUser("a@x.com")
	suite.assignee = suite.createTestUser("b@x.com")
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(title string) *models.Task {
	assigneeEmail := suite.assignee.Email
	task, err := suite.service.CreateTask(services.CreateTaskInput{
		Title:         title,
		Priority:      "LOW",
		AssigneeEmail: &assigneeEmail,
		OwnerID:       suite.owner.ID,
	})
	suite.Require().NoError(err)
	return task
}

// Helper function to create an authenticated context with path params
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func taskParams(id string) gin.Params {
	return gin.Params{{Key: "taskId", Value: id}}
}

func checklistParams(taskID, itemID string) gin.Params {
	return gin.Params{
		{Key: "taskId", Value: taskID},
		{Key: "checklistId", Value: itemID},
	}
}

func (suite *TaskHandlerTestSuite) TestCreate_Success() {
	body, _ := json.Marshal(map[string]any{
		"title":    "New Task",
		"priority": "HIGH",
	})

	c, w := suite.createAuthContext("POST", "/api/v1/task", body, suite.owner.ID, nil)
	suite.handler.Create(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), true, response["success"])
	task := response["task"].(map[string]any)
	assert.Equal(suite.T(), "New Task", task["title"])
	assert.Equal(suite.T(), "TO_DO", task["status"])
	assert.Equal(suite.T(), "a@x.com", task["owner"])
}

func (suite *TaskHandlerTestSuite) TestCreate_MissingPriority() {
	body, _ := json.Marshal(map[string]any{"title": "New Task"})

	c, w := suite.createAuthContext("POST", "/api/v1/task", body, suite.owner.ID, nil)
	suite.handler.Create(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreate_DuplicateTitle() {
	suite.createTestTask("T1")

	body, _ := json.Marshal(map[string]any{"title": "T1", "priority": "LOW"})

	c, w := suite.createAuthContext("POST", "/api/v1/task", body, suite.owner.ID, nil)
	suite.handler.Create(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), false, response["success"])
}

func (suite *TaskHandlerTestSuite) TestGet_Success() {
	task := suite.createTestTask("T1")

	c, w := suite.createAuthContext("GET", "/api/v1/task/1", nil, suite.owner.ID, taskParams("1"))
	suite.handler.Get(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	got := response["task"].(map[string]any)
	assert.Equal(suite.T(), task.Title, got["title"])
	assert.Equal(suite.T(), "b@x.com", got["assigned_to"])
}

func (suite *TaskHandlerTestSuite) TestGet_NotFound() {
	c, w := suite.createAuthContext("GET", "/api/v1/task/999", nil, suite.owner.ID, taskParams("999"))
	suite.handler.Get(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGet_InvalidID() {
	c, w := suite.createAuthContext("GET", "/api/v1/task/abc", nil, suite.owner.ID, taskParams("abc"))
	suite.handler.Get(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdate_ByOwner() {
	suite.createTestTask("T1")

	body, _ := json.Marshal(map[string]any{"title": "T1 revised"})

	c, w := suite.createAuthContext("PUT", "/api/v1/task/1", body, suite.owner.ID, taskParams("1"))
	suite.handler.Update(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	task := response["task"].(map[string]any)
	assert.Equal(suite.T(), "T1 revised", task["title"])
}

func (suite *TaskHandlerTestSuite) TestUpdate_ReassignByAssignee() {
	suite.createTestTask("T1")

	body, _ := json.Marshal(map[string]any{"assignedTo": "a@x.com"})

	c, w := suite.createAuthContext("PUT", "/api/v1/task/1", body, suite.assignee.ID, taskParams("1"))
	suite.handler.Update(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_ByAssignee() {
	suite.createTestTask("T1")

	body, _ := json.Marshal(map[string]any{"status": "in progress"})

	c, w := suite.createAuthContext("PATCH", "/api/v1/task/1", body, suite.assignee.ID, taskParams("1"))
	suite.handler.UpdateStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	task := response["task"].(map[string]any)
	assert.Equal(suite.T(), "IN_PROGRESS", task["status"])
}

func (suite *TaskHandlerTestSuite) TestUpdateStatus_InvalidLabel() {
	suite.createTestTask("T1")

	body, _ := json.Marshal(map[string]any{"status": "ARCHIVED"})

	c, w := suite.createAuthContext("PATCH", "/api/v1/task/1", body, suite.owner.ID, taskParams("1"))
	suite.handler.UpdateStatus(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDelete_ByAssignee() {
	suite.createTestTask("T1")

	c, w := suite.createAuthContext("DELETE", "/api/v1/task/1", nil, suite.assignee.ID, taskParams("1"))
	suite.handler.Delete(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDelete_ByOwner() {
	task := suite.createTestTask("T1")

	c, w := suite.createAuthContext("DELETE", "/api/v1/task/1", nil, suite.owner.ID, taskParams("1"))
	suite.handler.Delete(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var deleted models.Task
	err := suite.db.First(&deleted, task.ID).Error
	assert.Error(suite.T(), err)
}

func (suite *TaskHandlerTestSuite) TestList_GroupedBuckets() {
	suite.createTestTask("T1")

	c, w := suite.createAuthContext("GET", "/api/v1/task", nil, suite.owner.ID, nil)
	suite.handler.List(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].(map[string]any)
	assert.Contains(suite.T(), tasks, "backlog")
	assert.Contains(suite.T(), tasks, "to_do")
	assert.Contains(suite.T(), tasks, "in_progress")
	assert.Contains(suite.T(), tasks, "done")
	assert.Len(suite.T(), tasks["to_do"].([]any), 1)
}

func (suite *TaskHandlerTestSuite) TestAnalytics() {
	suite.createTestTask("T1")

	c, w := suite.createAuthContext("GET", "/api/v1/task/analytics", nil, suite.owner.ID, nil)
	suite.handler.Analytics(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	analytics := response["analytics"].(map[string]any)
	assert.Equal(suite.T(), float64(1), analytics["todo"])
	assert.Equal(suite.T(), float64(1), analytics["low_priority"])
	assert.Equal(suite.T(), float64(0), analytics["due_dated"])
}

func (suite *TaskHandlerTestSuite) TestCreateChecklistItem_DefaultIncomplete() {
	suite.createTestTask("T1")

	body, _ := json.Marshal(map[string]any{"title": "step one"})

	c, w := suite.createAuthContext("POST", "/api/v1/task/1/checklist", body, suite.owner.ID, taskParams("1"))
	suite.handler.CreateChecklistItem(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	item := response["item"].(map[string]any)
	assert.Equal(suite.T(), false, item["is_completed"])
}

func (suite *TaskHandlerTestSuite) TestCreateChecklistItem_MissingTitle() {
	suite.createTestTask("T1")

	body, _ := json.Marshal(map[string]any{"isCompleted": true})

	c, w := suite.createAuthContext("POST", "/api/v1/task/1/checklist", body, suite.owner.ID, taskParams("1"))
	suite.handler.CreateChecklistItem(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateChecklistItem_Success() {
	task := suite.createTestTask("T1")
	item, err := suite.service.AddChecklistItem(task.ID, "step one", false, suite.owner.ID)
	suite.Require().NoError(err)

	body, _ := json.Marshal(map[string]any{"isCompleted": true})

	c, w := suite.createAuthContext("PUT", "/api/v1/task/1/checklist/1", body, suite.owner.ID,
		checklistParams("1", "1"))
	suite.handler.UpdateChecklistItem(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.ChecklistItem
	suite.Require().NoError(suite.db.First(&updated, item.ID).Error)
	assert.True(suite.T(), updated.IsCompleted)
}

func (suite *TaskHandlerTestSuite) TestDeleteChecklistItem_NotFound() {
	suite.createTestTask("T1")

	c, w := suite.createAuthContext("DELETE", "/api/v1/task/1/checklist/999", nil, suite.owner.ID,
		checklistParams("1", "999"))
	suite.handler.DeleteChecklistItem(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestGetChecklist_Empty() {
	suite.createTestTask("T1")

	c, w := suite.createAuthContext("GET", "/api/v1/task/1/checklists", nil, suite.owner.ID, taskParams("1"))
	suite.handler.GetChecklist(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
