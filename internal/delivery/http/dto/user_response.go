package dto

import (
	"time"

	"recruitment-portal/internal/domain/user"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username             string `json:"username" validate:"required,max=150"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	Role                 string `json:"role" validate:"required,oneof=POSTER APPLICANT poster applicant"`
}

// LoginRequest accepts a username or an email in Username.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName      *string `json:"first_name" validate:"omitempty,max=150"`
	LastName       *string `json:"last_name" validate:"omitempty,max=150"`
	Phone          *string `json:"phone" validate:"omitempty,max=20"`
	Skills         *string `json:"skills"`
	WorkExperience *string `json:"work_experience"`
	Education      *string `json:"education"`
}

type UserProfileResponse struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	FullName          string    `json:"full_name"`
	Phone             string    `json:"phone"`
	Skills            string    `json:"skills"`
	WorkExperience    string    `json:"work_experience"`
	Education         string    `json:"education"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
}

func NewUserProfileResponse(u user.User, pictureURL string) UserProfileResponse {
	return UserProfileResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		Role:              u.Role.String(),
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		FullName:          u.FullName(),
		Phone:             u.Phone,
		Skills:            u.Skills,
		WorkExperience:    u.WorkExperience,
		Education:         u.Education,
		ProfilePictureURL: pictureURL,
		CreatedAt:         u.CreatedAt,
	}
}

type AuthResponse struct {
	User         *UserProfileResponse `json:"user,omitempty"`
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
}

type ProfileImageResponse struct {
	ProfileImageURL string `json:"profile_image_url"`
}
