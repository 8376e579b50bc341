package auth

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name,omitempty"`
}

type ResendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ExchangeRequest struct {
	Token string `json:"token" binding:"required"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterAdminRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	SetupKey string `json:"setup_key" binding:"required"`
}

type UpdateProfileRequest struct {
	Name               string `json:"name,omitempty" validate:"omitempty,min=2"`
	CollegeCode        string `json:"college_code,omitempty"`
	ProgramName        string `json:"program_name,omitempty"`
	YearOfStudy        int    `json:"year_of_study,omitempty" validate:"omitempty,min=1,max=6"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	Bio                string `json:"bio,omitempty"`
}

type UserPublic struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
