package domain

import "time"

type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

func ParseUserRole(s string) (UserRole, bool) {
	switch UserRole(s) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return UserRole(s), true
	}
	return "", false
}

type User struct {
	ID           int64    `gorm:"column:id;primaryKey" json:"id"`
	Email        string   `gorm:"column:email;uniqueIndex" json:"email" validate:"required,email"`
	Name         string   `gorm:"column:name" json:"name"`
	PasswordHash string   `gorm:"column:password_hash" json:"-"`
	Role         UserRole `gorm:"column:role" json:"role"`
	IsActive     bool     `gorm:"column:is_active" json:"is_active"`

	// Academic profile
	CollegeCode        string `gorm:"column:college_code" json:"college_code,omitempty"`
	ProgramName        string `gorm:"column:program_name" json:"program_name,omitempty"`
	YearOfStudy        int    `gorm:"column:year_of_study" json:"year_of_study,omitempty"`
	RegistrationNumber string `gorm:"column:registration_number" json:"registration_number,omitempty"`
	Bio                string `gorm:"column:bio" json:"bio,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) IsStaff() bool { return u.Role == RoleInstructor || u.Role == RoleAdmin }
