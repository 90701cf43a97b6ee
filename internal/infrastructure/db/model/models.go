// Package model holds the gorm models of the services database.
package model

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&PermissionModel{},
		&RoleModel{},
		&GroupModel{},
		&UserModel{},
		&AttributeModel{},
		&SessionTokenModel{},
		&AuditLogModel{},
	}
}
