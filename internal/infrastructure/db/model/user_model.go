package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is the users table.
type UserModel struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UUID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"uuid"`
	Username string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email    string    `gorm:"size:250;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"size:250;not null" json:"-"`
	IsPublic bool      `gorm:"not null;default:false" json:"is_public"`
	Deleted  bool      `gorm:"not null;default:false" json:"deleted"`

	RoleID *uint      `gorm:"index" json:"role_id,omitempty"`
	Role   *RoleModel `gorm:"constraint:OnDelete:SET NULL" json:"role,omitempty"`

	Groups     []GroupModel        `gorm:"many2many:user_groups" json:"groups,omitempty"`
	Attributes []AttributeModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"attributes,omitempty"`
	Tokens     []SessionTokenModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

// AttributeModel is the user_attributes table.
type AttributeModel struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Value  string `gorm:"type:text" json:"value"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AttributeModel) TableName() string {
	return "user_attributes"
}
