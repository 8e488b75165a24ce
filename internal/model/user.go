package model

import (
	"time"
)

type User struct {
	Id        int64     `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
}

// UserCreateRequest is the already-parsed form submitted to create a user.
// Age stays a string so malformed input surfaces as a validation error.
type UserCreateRequest struct {
	Name  string
	Age   string
	Image *ImageUpload
}

type UserDeleteResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
