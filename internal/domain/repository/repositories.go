package repository

// Repositories bundles every repository the use cases need.
type Repositories struct {
	User     UserRepository
	Token    TokenRepository
	AuditLog AuditLogRepository
	Cache    CacheRepository
}

// NewRepositories creates the bundle.
func NewRepositories(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	auditLogRepo AuditLogRepository,
	cacheRepo CacheRepository,
) *Repositories {
	return &Repositories{
		User:     userRepo,
		Token:    tokenRepo,
		AuditLog: auditLogRepo,
		Cache:    cacheRepo,
	}
}
