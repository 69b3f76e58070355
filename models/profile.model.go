package models

import "gorm.io/gorm"

// Proficiency levels for a profile skill.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "BEGINNER"
	ProficiencyIntermediate Proficiency = "INTERMEDIATE"
	ProficiencyAdvanced     Proficiency = "ADVANCED"
	ProficiencyExpert       Proficiency = "EXPERT"
)

// Valid reports whether p is one of the known proficiency levels.
func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced, ProficiencyExpert:
		return true
	}
	return false
}

// Profile holds the employee-facing profile data for a user.
type Profile struct {
	gorm.Model
	UserID   uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	JobTitle string  `json:"job_title"`
	Bio      string  `json:"bio"`
	Location string  `json:"location"`
	Skills   []Skill `json:"skills" gorm:"foreignKey:ProfileID"`
}

// Skill is one row of a profile's ordered skill list.
type Skill struct {
	gorm.Model
	ProfileID   uint        `json:"profile_id" gorm:"index;not null"`
	Name        string      `json:"name" gorm:"not null"`
	Proficiency Proficiency `json:"proficiency" gorm:"type:varchar(20);default:'BEGINNER'"`
	Position    int         `json:"position" gorm:"default:0"`
}
