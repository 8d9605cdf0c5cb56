package services

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/furnistore/internal/apperr"
	"github.com/example/furnistore/internal/config"
	"github.com/example/furnistore/internal/database"
	"github.com/example/furnistore/internal/models"
	"github.com/example/furnistore/internal/utils"
)

// AdminService owns operator accounts: login and super-admin management.
type AdminService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAdminService constructs an AdminService.
func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{db: db, cfg: cfg}
}

// Login authenticates an admin by username. Unknown username and wrong
// password yield the same invalid-credentials error.
func (s *AdminService) Login(username, password string) (string, *models.Admin, error) {
	username = strings.TrimSpace(username)

	var admin models.Admin
	if err := s.db.Where("username = ?", username).First(&admin).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, apperr.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !utils.CheckPassword(admin.PasswordHash, password) {
		return "", nil, apperr.ErrInvalidCredentials
	}

	if !admin.IsActive {
		return "", nil, apperr.ErrAccountDisabled
	}

	token, err := utils.GenerateToken(s.cfg.JWTSecret, admin.ID, admin.Role, s.cfg.TokenExpires)
	if err != nil {
		return "", nil, err
	}

	return token, &admin, nil
}

// CreateAdminInput is a validated new-admin request.
type CreateAdminInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Create adds an operator account. Only a super admin may call this.
func (s *AdminService) Create(creatorRole string, in CreateAdminInput) (*models.Admin, error) {
	if creatorRole != models.RoleSuperAdmin {
		return nil, apperr.ErrForbidden
	}

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = models.RoleAdmin
	}

	switch {
	case in.Username == "":
		return nil, apperr.Validation("username is required")
	case !emailPattern.MatchString(in.Email):
		return nil, apperr.Validation("a valid email is required")
	case len(in.Password) < 6:
		return nil, apperr.Validation("password must be at least 6 characters")
	case in.Role != models.RoleAdmin && in.Role != models.RoleSuperAdmin:
		return nil, apperr.Validation("role must be admin or super_admin")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	admin := models.Admin{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		if field, ok := database.UniqueViolationField(err); ok {
			return nil, apperr.Duplicate(field)
		}
		return nil, err
	}

	return &admin, nil
}

// ChangePassword rotates an operator's own password after verifying the
// current one.
func (s *AdminService) ChangePassword(adminID uuid.UUID, current, next string) error {
	var admin models.Admin
	if err := s.db.First(&admin, "id = ?", adminID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.ErrNotFound
		}
		return err
	}

	if !utils.CheckPassword(admin.PasswordHash, current) {
		return apperr.ErrInvalidCredentials
	}
	if len(next) < 6 {
		return apperr.Validation("password must be at least 6 characters")
	}

	hash, err := utils.HashPassword(next)
	if err != nil {
		return err
	}

	return s.db.Model(&models.Admin{}).
		Where("id = ?", adminID).
		Update("password_hash", hash).Error
}

// UpdateAdminInput carries the optional fields of an account edit.
type UpdateAdminInput struct {
	Username *string
	Email    *string
	Role     *string
}

func (in *UpdateAdminInput) updates() (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if in.Username != nil {
		v := strings.TrimSpace(*in.Username)
		if v == "" {
			return nil, apperr.Validation("username cannot be empty")
		}
		updates["username"] = v
	}
	if in.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*in.Email))
		if !emailPattern.MatchString(v) {
			return nil, apperr.Validation("a valid email is required")
		}
		updates["email"] = v
	}
	if in.Role != nil {
		if *in.Role != models.RoleAdmin && *in.Role != models.RoleSuperAdmin {
			return nil, apperr.Validation("role must be admin or super_admin")
		}
		updates["role"] = *in.Role
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("nothing to update")
	}

	return updates, nil
}

// Update edits an operator account. Only a super admin may call this.
func (s *AdminService) Update(creatorRole string, adminID uuid.UUID, in UpdateAdminInput) (*models.Admin, error) {
	if creatorRole != models.RoleSuperAdmin {
		return nil, apperr.ErrForbidden
	}

	updates, err := in.updates()
	if err != nil {
		return nil, err
	}

	res := s.db.Model(&models.Admin{}).Where("id = ?", adminID).Updates(updates)
	if res.Error != nil {
		if field, ok := database.UniqueViolationField(res.Error); ok {
			return nil, apperr.Duplicate(field)
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrNotFound
	}

	var admin models.Admin
	if err := s.db.First(&admin, "id = ?", adminID).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// SetActive toggles an operator account. Admins are never deleted.
func (s *AdminService) SetActive(creatorRole string, adminID uuid.UUID, active bool) (*models.Admin, error) {
	if creatorRole != models.RoleSuperAdmin {
		return nil, apperr.ErrForbidden
	}

	res := s.db.Model(&models.Admin{}).Where("id = ?", adminID).Update("is_active", active)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrNotFound
	}

	var admin models.Admin
	if err := s.db.First(&admin, "id = ?", adminID).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// List returns all operator accounts. Only a super admin may call this.
func (s *AdminService) List(creatorRole string) ([]models.Admin, error) {
	if creatorRole != models.RoleSuperAdmin {
		return nil, apperr.ErrForbidden
	}

	var admins []models.Admin
	if err := s.db.Order("created_at asc").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}
