package dto

import (
	"github.com/Ancishan/micro-task-earnning-pf-server/internal/models"
)

// TokenRequest is the body of POST /jwt
type TokenRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// TokenResponse echoes the issued token for clients that prefer bearer auth
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

// UpsertUserRequest is the body of POST /users
type UpsertUserRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email" binding:"required,email"`
	PhotoURL string      `json:"photo_url"`
	Role     models.Role `json:"role"`
	Skill    string      `json:"skill"`
}

// UpsertUserResponse tells the caller whether the user was new
type UpsertUserResponse struct {
	Created bool        `json:"created"`
	User    models.User `json:"user"`
}

// RoleResponse is the body of GET /users/role/:email
type RoleResponse struct {
	Role models.Role `json:"role"`
}

// AdjustCoinsRequest is the body of PUT /users/update-coins. Coins is a signed delta.
type AdjustCoinsRequest struct {
	Email string `json:"email" binding:"required"`
	Coins int64  `json:"coins" binding:"required"`
}

// SetCommentRequest is the body of PUT /users/update-comment
type SetCommentRequest struct {
	Email   string `json:"email" binding:"required"`
	Comment string `json:"comment"`
}

// CreateCommentRequest is the body of POST /comments
type CreateCommentRequest struct {
	WorkerEmail string `json:"worker_email" binding:"required"`
	Comment     string `json:"comment" binding:"required"`
}

// ResultResponse is the generic acknowledgement body
type ResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
