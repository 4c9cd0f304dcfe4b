package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario stores system users with role-based access.
// Rol: "vendedor" | "administrador"
type Usuario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Nombre       string    `gorm:"not null" json:"nombre"`
	Email        *string   `json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Rol          string    `gorm:"type:varchar(20);not null" json:"rol"`
	Activo       bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
