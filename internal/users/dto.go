package users

// RegisterRequest is the open signup payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=40"`
	FullName string `json:"full_name" validate:"omitempty,max=255"`
}

// CreateUserRequest is the administrative creation payload.
type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=8,max=40"`
	FullName    string `json:"full_name" validate:"omitempty,max=255"`
	IsActive    *bool  `json:"is_active,omitempty"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UpdateMeRequest updates the calling user's own profile.
type UpdateMeRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
}

// UpdatePasswordRequest changes the calling user's password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,min=8,max=40"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=40"`
}

// AdminUpdateUserRequest is the administrative patch payload.
type AdminUpdateUserRequest struct {
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	FullName    *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Password    *string `json:"password,omitempty" validate:"omitempty,min=8,max=40"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UsersResponse is a paginated listing with the total row count.
type UsersResponse struct {
	Data  []UserResponse `json:"data"`
	Count int            `json:"count"`
}

// NewUserResponse maps a domain user to its public view.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		FullName:    u.FullName,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
	}
}
