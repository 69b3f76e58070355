package departmentController

import (
	"strconv"
	"strings"

	"ldportal/database"
	"ldportal/middleware"
	"ldportal/models"

	"github.com/gofiber/fiber/v2"
)

// Create adds a department. Admins only.
func Create(c *fiber.Ctx) error {
	reqData := new(struct {
		Name string `json:"name"`
	})

	if err := c.BodyParser(reqData); err != nil || strings.TrimSpace(reqData.Name) == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Department name is required!", nil)
	}

	department := models.Department{Name: strings.TrimSpace(reqData.Name)}
	if err := database.Database.Db.Create(&department).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Department already exists!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Department created.", department)
}

// List returns all departments with member counts.
func List(c *fiber.Ctx) error {
	type departmentRow struct {
		models.Department
		MemberCount int64 `json:"member_count"`
	}

	var departments []models.Department
	if err := database.Database.Db.Order("name ASC").Find(&departments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch departments!", nil)
	}

	rows := make([]departmentRow, 0, len(departments))
	for _, d := range departments {
		var count int64
		database.Database.Db.Model(&models.User{}).
			Where("department_id = ? AND is_deleted = ?", d.ID, false).Count(&count)
		rows = append(rows, departmentRow{Department: d, MemberCount: count})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Departments fetched.", rows)
}

// AssignUser moves a user into a department. Admins only.
func AssignUser(c *fiber.Ctx) error {
	departmentID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
	if err != nil || departmentID <= 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid department ID!", nil)
	}

	reqData := new(struct {
		UserID uint `json:"user_id"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.UserID == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required!", nil)
	}

	var department models.Department
	if err := database.Database.Db.First(&department, departmentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Department not found!", nil)
	}

	var user models.User
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", reqData.UserID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	deptID := uint(departmentID)
	user.DepartmentID = &deptID
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User assigned to department.", user)
}
