package dto

import "github.com/jhoicas/storefront-admin/internal/domain/entity"

// SignInRequest abre sesión para una cuenta existente (sin contraseña).
type SignInRequest struct {
	UserID string `json:"userId"`
}

// SignInResponse token Bearer y la cuenta con sesión abierta.
type SignInResponse struct {
	Token        string             `json:"token"`
	User         entity.User        `json:"user"`
	Capabilities entity.Permissions `json:"capabilities,omitempty"`
}

// SessionResponse estado persistido de la sesión.
type SessionResponse struct {
	User            *entity.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}
