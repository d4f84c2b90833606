package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is a member's level inside a company.
type Role string

const (
	RoleViewer Role = "VIEWER"
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
	RoleOwner  Role = "OWNER"
)

// Rank places the role on the VIEWER < MEMBER < ADMIN < OWNER order.
// Unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleViewer:
		return 1
	case RoleMember:
		return 2
	case RoleAdmin:
		return 3
	case RoleOwner:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether r satisfies the required minimum role.
func (r Role) AtLeast(required Role) bool {
	return r.Rank() > 0 && r.Rank() >= required.Rank()
}

// ParseRole converts a case-insensitive role name.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if role.Rank() == 0 {
		return "", fmt.Errorf("invalid role %q", value)
	}
	return role, nil
}

// Company is a tenant owning memberships and brand kits.
type Company struct {
	BaseModel
	Name     string          `gorm:"size:255;not null" json:"name"`
	Slug     string          `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	Industry *string         `gorm:"size:255" json:"industry"`
	Website  *string         `gorm:"size:2048" json:"website"`
	Members  []CompanyMember `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`
}

// CompanyMember links a user with a company and captures their role.
type CompanyMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_members_user_company" json:"userId"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_members_user_company;index" json:"companyId"`
	Role      Role      `gorm:"type:varchar(16);not null" json:"role"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joinedAt"`

	Company *Company `json:"company,omitempty"`
	User    *User    `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

// BeforeCreate ensures UUIDs are generated for new memberships.
func (m *CompanyMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
