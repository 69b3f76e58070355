package trainingRoutes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ldportal/config"
	"ldportal/database"
	"ldportal/middleware"
	"ldportal/models"
	trainingRoutes "ldportal/routers/trainingRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	config.AppConfig = &config.Config{JWTKey: "test-secret"}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	trainingRoutes.SetupTrainingRoutes(app)
	return app
}

func createUser(t *testing.T, name string, role models.Role) *models.User {
	user := &models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, database.Database.Db.Create(user).Error)
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func TestApprovalWorkflowOverHTTP(t *testing.T) {
	app := newTestApp(t)
	manager := createUser(t, "manager", models.RoleManager)
	superAdmin := createUser(t, "super", models.RoleSuperAdmin)
	managerToken := tokenFor(t, manager)
	superToken := tokenFor(t, superAdmin)

	// Manager drafts a training.
	resp, body := doJSON(t, app, "POST", "/training/create", managerToken, fiber.Map{
		"title":            "Incident Response",
		"category":         "Security",
		"type":             "WORKSHOP",
		"max_participants": 12,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := body["data"].(map[string]interface{})
	assert.Equal(t, "DRAFT", created["status"])
	trainingID := uint(created["ID"].(float64))

	// Submit for approval.
	resp, body = doJSON(t, app, "POST", fmt.Sprintf("/training/%d/submit", trainingID), managerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	submitted := body["data"].(map[string]interface{})
	assert.Equal(t, "PENDING_APPROVAL", submitted["status"])

	// A manager cannot approve.
	resp, _ = doJSON(t, app, "POST", fmt.Sprintf("/training/%d/approve", trainingID), managerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// The super admin can; approval publishes.
	resp, body = doJSON(t, app, "POST", fmt.Sprintf("/training/%d/approve", trainingID), superToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	approved := body["data"].(map[string]interface{})
	assert.Equal(t, "PUBLISHED", approved["status"])

	// Approving twice is an invalid transition.
	resp, _ = doJSON(t, app, "POST", fmt.Sprintf("/training/%d/approve", trainingID), superToken, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRejectionWorkflowOverHTTP(t *testing.T) {
	app := newTestApp(t)
	manager := createUser(t, "manager", models.RoleManager)
	superAdmin := createUser(t, "super", models.RoleSuperAdmin)
	managerToken := tokenFor(t, manager)
	superToken := tokenFor(t, superAdmin)

	resp, body := doJSON(t, app, "POST", "/training/create", managerToken, fiber.Map{
		"title":    "Public Speaking",
		"category": "Soft Skills",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	trainingID := uint(body["data"].(map[string]interface{})["ID"].(float64))

	resp, _ = doJSON(t, app, "POST", fmt.Sprintf("/training/%d/submit", trainingID), managerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Rejection without a reason is a validation error.
	resp, _ = doJSON(t, app, "POST", fmt.Sprintf("/training/%d/reject", trainingID), superToken, fiber.Map{})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, body = doJSON(t, app, "POST", fmt.Sprintf("/training/%d/reject", trainingID), superToken, fiber.Map{
		"reason": "Needs a practical module",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	rejected := body["data"].(map[string]interface{})
	assert.Equal(t, "REJECTED", rejected["status"])
	assert.Equal(t, "Needs a practical module", rejected["rejection_reason"])

	// Editing the rejected training sends it back to DRAFT.
	resp, body = doJSON(t, app, "PUT", fmt.Sprintf("/training/%d", trainingID), managerToken, fiber.Map{
		"title": "Public Speaking, Revised",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	edited := body["data"].(map[string]interface{})
	assert.Equal(t, "DRAFT", edited["status"])
}

func TestCatalogHidesUnpublishedFromEmployees(t *testing.T) {
	app := newTestApp(t)
	manager := createUser(t, "manager", models.RoleManager)
	employee := createUser(t, "employee", models.RoleEmployee)
	managerToken := tokenFor(t, manager)
	employeeToken := tokenFor(t, employee)

	resp, _ := doJSON(t, app, "POST", "/training/create", managerToken, fiber.Map{
		"title":    "Hidden Draft",
		"category": "Engineering",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Employees cannot create trainings at all.
	resp, _ = doJSON(t, app, "POST", "/training/create", employeeToken, fiber.Map{
		"title":    "Not Allowed",
		"category": "Engineering",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// The draft does not appear in the employee's catalog.
	resp, body := doJSON(t, app, "GET", "/training/list", employeeToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Empty(t, data["trainings"])

	// Requests without a token are rejected outright.
	resp, _ = doJSON(t, app, "GET", "/training/list", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
