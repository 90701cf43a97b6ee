package model

import "time"

// RoleModel is the user_roles table.
type RoleModel struct {
	ID          uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string            `gorm:"size:100;not null" json:"name"`
	Slug        string            `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string            `gorm:"type:text" json:"description"`
	Permissions []PermissionModel `gorm:"many2many:role_permissions" json:"permissions,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RoleModel) TableName() string {
	return "user_roles"
}

// PermissionModel is the user_permissions table.
type PermissionModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;not null;uniqueIndex" json:"slug"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PermissionModel) TableName() string {
	return "user_permissions"
}

// GroupModel is the groups table.
type GroupModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Slug        string `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"size:250" json:"image"`
	IsPublic    bool   `gorm:"not null;default:false" json:"is_public"`
	IsProtected bool   `gorm:"not null;default:false" json:"is_protected"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (GroupModel) TableName() string {
	return "groups"
}
