package entity

// Role groups permissions. A user has at most one role.
type Role struct {
	ID          uint
	Name        string
	Slug        string
	Description string
	Permissions []*Permission
}

// Profile returns the role as carried inside a UserProfile.
func (r *Role) Profile() RoleProfile {
	perms := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		perms = append(perms, p.Slug)
	}
	return RoleProfile{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Permissions: perms,
	}
}

// RoleProfile lists permissions by slug.
type RoleProfile struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

// Permission is a named capability.
type Permission struct {
	ID   uint
	Name string
	Slug string
}

// Group is a named set of users.
type Group struct {
	ID          uint
	Name        string
	Slug        string
	Description string
	Image       string
	IsPublic    bool
	IsProtected bool
}

// Attribute is a free-form name/value pair attached to a user.
type Attribute struct {
	ID     uint
	UserID uint
	Name   string
	Value  string
}
