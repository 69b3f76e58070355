package main

import (
	"encoding/csv"
	"log"
	"os"
	"strings"

	"ldportal/config"
	"ldportal/database"
	"ldportal/models"

	"golang.org/x/crypto/bcrypt"
)

// Bulk-imports employees from Employees.csv. Expected columns:
// Name, Email, Role, Department, ManagerEmail, Password
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	file, err := os.Open("Employees.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	field := func(row []string, name string) string {
		idx, ok := headerIndex[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	inserted := 0
	skipped := 0

	for i, row := range records[1:] {
		email := strings.ToLower(field(row, "Email"))
		name := field(row, "Name")
		if email == "" || name == "" {
			log.Printf("Row %d: missing name or email, skipping", i+2)
			skipped++
			continue
		}

		var existing models.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		role := models.Role(strings.ToUpper(field(row, "Role")))
		if !role.Valid() {
			role = models.RoleEmployee
		}

		password := field(row, "Password")
		if password == "" {
			password = "ChangeMe123!"
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
		if err != nil {
			log.Printf("Row %d: failed to hash password: %v", i+2, err)
			skipped++
			continue
		}

		user := models.User{
			Name:     name,
			Email:    email,
			Password: string(hashed),
			Role:     role,
			IsActive: true,
		}

		if deptName := field(row, "Department"); deptName != "" {
			var dept models.Department
			if err := db.Where("name = ?", deptName).First(&dept).Error; err != nil {
				dept = models.Department{Name: deptName}
				if err := db.Create(&dept).Error; err != nil {
					log.Printf("Row %d: failed to create department %q: %v", i+2, deptName, err)
				}
			}
			if dept.ID != 0 {
				user.DepartmentID = &dept.ID
			}
		}

		if managerEmail := strings.ToLower(field(row, "ManagerEmail")); managerEmail != "" {
			var manager models.User
			if err := db.Where("email = ?", managerEmail).First(&manager).Error; err == nil {
				user.ManagerID = &manager.ID
			} else {
				log.Printf("Row %d: manager %s not found yet, leaving unset", i+2, managerEmail)
			}
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("Row %d: failed to insert %s: %v", i+2, email, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import finished: %d inserted, %d skipped", inserted, skipped)
}
