package mapper

import (
	"github.com/HYKY/hyky-services/internal/domain/entity"
	"github.com/HYKY/hyky-services/internal/infrastructure/db/model"
)

// UserFromModel converts a user row with its preloaded associations.
func UserFromModel(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	user := &entity.User{
		ID:        m.ID,
		UUID:      m.UUID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Deleted:   m.Deleted,
		Username:  m.Username,
		Email:     m.Email,
		Password:  m.Password,
		IsPublic:  m.IsPublic,
		Role:      RoleFromModel(m.Role),
	}

	for i := range m.Groups {
		user.Groups = append(user.Groups, GroupFromModel(&m.Groups[i]))
	}
	for i := range m.Attributes {
		a := m.Attributes[i]
		user.Attributes = append(user.Attributes, &entity.Attribute{
			ID:     a.ID,
			UserID: a.UserID,
			Name:   a.Name,
			Value:  a.Value,
		})
	}

	return user
}

// UserToModel converts a user without its associations.
func UserToModel(u *entity.User) *model.UserModel {
	if u == nil {
		return nil
	}

	m := &model.UserModel{
		ID:        u.ID,
		UUID:      u.UUID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Deleted:   u.Deleted,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		IsPublic:  u.IsPublic,
	}
	if u.Role != nil && u.Role.ID != 0 {
		roleID := u.Role.ID
		m.RoleID = &roleID
	}
	return m
}

func RoleFromModel(m *model.RoleModel) *entity.Role {
	if m == nil {
		return nil
	}

	role := &entity.Role{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
	}
	for _, p := range m.Permissions {
		role.Permissions = append(role.Permissions, &entity.Permission{ID: p.ID, Name: p.Name, Slug: p.Slug})
	}
	return role
}

func GroupFromModel(m *model.GroupModel) *entity.Group {
	if m == nil {
		return nil
	}

	return &entity.Group{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Image:       m.Image,
		IsPublic:    m.IsPublic,
		IsProtected: m.IsProtected,
	}
}
