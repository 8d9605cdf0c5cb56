package models

// Principal roles carried in session tokens.
const (
	RoleDealer     = "dealer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Admin is an operator account. Admins are created only by a super admin
// (or the bootstrap seed) and are deactivated rather than deleted.
type Admin struct {
	BaseModel
	Username     string `gorm:"uniqueIndex" json:"username"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"default:admin" json:"role"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
}

// Public returns the outward-facing representation of the admin.
func (a *Admin) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":         a.ID,
		"username":   a.Username,
		"email":      a.Email,
		"role":       a.Role,
		"is_active":  a.IsActive,
		"created_at": a.CreatedAt,
	}
}
