package domain

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_profile_service.go -package mocks github.com/relasjon/crm/internal/domain ProfileService
//go:generate mockgen -destination mocks/mock_profile_repository.go -package mocks github.com/relasjon/crm/internal/domain ProfileRepository

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Profile mirrors an identity with the data the application needs about a user
type Profile struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	AvatarURL   *string    `json:"avatar_url,omitempty"`
	Role        Role       `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewProfileFor builds the default profile of an identity
func NewProfileFor(identity *Identity) *Profile {
	return &Profile{
		ID:          identity.ID,
		Email:       identity.Email,
		DisplayName: identity.DisplayName(),
		Role:        RoleUser,
	}
}

// UpdateProfileRequest changes the caller's own profile
type UpdateProfileRequest struct {
	DisplayName Optional[string] `json:"display_name"`
	AvatarURL   Optional[string] `json:"avatar_url"`
}

func (r *UpdateProfileRequest) Apply(p *Profile) error {
	if r.DisplayName.Set && r.DisplayName.Null {
		return NewValidationError("display_name", "display name is required")
	}
	applyRequired(&p.DisplayName, r.DisplayName)
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	applyOptional(&p.AvatarURL, r.AvatarURL)
	p.AvatarURL = cleanString(p.AvatarURL)

	if p.DisplayName == "" {
		return NewValidationError("display_name", "display name is required")
	}
	if len([]rune(p.DisplayName)) > maxShortLength {
		return NewValidationError("display_name", "display name is too long")
	}
	if p.AvatarURL != nil && !govalidator.IsURL(*p.AvatarURL) {
		return NewValidationError("avatar_url", "avatar must be a valid URL")
	}
	return nil
}

// RegisterIdentityRequest mirrors a freshly registered identity
type RegisterIdentityRequest struct {
	ID       string                 `json:"id"`
	Email    string                 `json:"email"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

func (r *RegisterIdentityRequest) Validate() (*Identity, error) {
	id := strings.TrimSpace(r.ID)
	if !govalidator.IsUUID(id) {
		return nil, NewValidationError("id", "invalid identity")
	}
	email := strings.TrimSpace(r.Email)
	if email != "" && !govalidator.IsEmail(email) {
		return nil, NewValidationError("email", "invalid email address")
	}
	return &Identity{ID: id, Email: email, Metadata: r.Metadata}, nil
}

// ProfileRepository stores profiles and the identity mirror rows
type ProfileRepository interface {
	// Ensure inserts the profile if missing and returns the stored row
	Ensure(ctx context.Context, identity *Identity, profile *Profile) (*Profile, error)
	GetByID(ctx context.Context, identity *Identity, id string) (*Profile, error)
	List(ctx context.Context, identity *Identity, limit int) ([]*Profile, error)
	Update(ctx context.Context, identity *Identity, id string, fn func(*Profile) error) (*Profile, error)
	TouchLastLogin(ctx context.Context, identity *Identity, at time.Time) error
	// RegisterIdentity inserts the identity mirror row, which fires the profile trigger
	RegisterIdentity(ctx context.Context, identity *Identity) error
}

type ProfileService interface {
	EnsureProfile(ctx context.Context, identity *Identity) Result[*Profile]
	GetCurrentProfile(ctx context.Context) Result[*Profile]
	ListProfiles(ctx context.Context) Result[[]*Profile]
	UpdateOwnProfile(ctx context.Context, req *UpdateProfileRequest) Result[*Profile]
	RegisterIdentity(ctx context.Context, req *RegisterIdentityRequest) Result[*Profile]
}
