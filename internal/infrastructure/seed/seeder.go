package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/HYKY/hyky-services/internal/domain/service"
	"github.com/HYKY/hyky-services/internal/infrastructure/db/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Report counts the rows written per section. A skipped section was not
// empty and got nothing.
type Report struct {
	Groups      int
	Permissions int
	Roles       int
	Users       int
	Skipped     []string
}

// Seeder writes a Bundle to the database.
type Seeder struct {
	db     *gorm.DB
	hasher *service.PasswordHasher
	logger *zap.Logger
}

func NewSeeder(db *gorm.DB, hasher *service.PasswordHasher, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, hasher: hasher, logger: logger}
}

// stores keep the rows created in this run, keyed by name.
type stores struct {
	groups      map[string]*model.GroupModel
	permissions map[string]*model.PermissionModel
	roles       map[string]*model.RoleModel
}

// Run seeds every empty table of the bundle in one transaction. Roles,
// users and groups reference each other by name; a name not found in this
// run or in the database is ignored.
func (s *Seeder) Run(ctx context.Context, b *Bundle) (*Report, error) {
	report := &Report{}
	st := stores{
		groups:      make(map[string]*model.GroupModel),
		permissions: make(map[string]*model.PermissionModel),
		roles:       make(map[string]*model.RoleModel),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name    string
			table   interface{}
			written *int
			run     func(tx *gorm.DB) (int, error)
		}{
			{"groups", &model.GroupModel{}, &report.Groups, func(tx *gorm.DB) (int, error) { return s.seedGroups(tx, b.Groups, st) }},
			{"permissions", &model.PermissionModel{}, &report.Permissions, func(tx *gorm.DB) (int, error) { return s.seedPermissions(tx, b.Permissions, st) }},
			{"roles", &model.RoleModel{}, &report.Roles, func(tx *gorm.DB) (int, error) { return s.seedRoles(tx, b.Roles, st) }},
			{"users", &model.UserModel{}, &report.Users, func(tx *gorm.DB) (int, error) { return s.seedUsers(tx, b.Users, st) }},
		}

		for _, step := range steps {
			var count int64
			if err := tx.Model(step.table).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to count %s: %w", step.name, err)
			}
			if count > 0 {
				s.logger.Warn("Table already initialized, skipping", zap.String("table", step.name), zap.Int64("rows", count))
				report.Skipped = append(report.Skipped, step.name)
				continue
			}

			n, err := step.run(tx)
			if err != nil {
				return fmt.Errorf("failed to seed %s: %w", step.name, err)
			}
			s.logger.Info("Seeded table", zap.String("table", step.name), zap.Int("rows", n))
			*step.written = n
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Seeder) seedGroups(tx *gorm.DB, seeds []GroupSeed, st stores) (int, error) {
	for _, g := range seeds {
		row := &model.GroupModel{
			Name:        g.Name,
			Slug:        slugOf(g.Slug, g.Name),
			Description: g.Description,
			Image:       g.Image,
			IsPublic:    g.IsPublic,
			IsProtected: g.IsProtected,
		}
		if err := tx.Create(row).Error; err != nil {
			return 0, err
		}
		if _, ok := st.groups[g.Name]; !ok {
			st.groups[g.Name] = row
		}
	}
	return len(seeds), nil
}

func (s *Seeder) seedPermissions(tx *gorm.DB, seeds []PermissionSeed, st stores) (int, error) {
	for _, p := range seeds {
		row := &model.PermissionModel{
			Name: p.Name,
			Slug: slugOf(p.Slug, p.Name),
		}
		if err := tx.Create(row).Error; err != nil {
			return 0, err
		}
		if _, ok := st.permissions[p.Name]; !ok {
			st.permissions[p.Name] = row
		}
	}
	return len(seeds), nil
}

func (s *Seeder) seedRoles(tx *gorm.DB, seeds []RoleSeed, st stores) (int, error) {
	for _, r := range seeds {
		row := &model.RoleModel{
			Name:        r.Name,
			Slug:        slugOf(r.Slug, r.Name),
			Description: r.Description,
		}
		for _, name := range r.Permissions {
			perm, err := lookup(tx, st.permissions, name)
			if err != nil {
				return 0, err
			}
			if perm != nil {
				row.Permissions = append(row.Permissions, *perm)
			}
		}
		if err := tx.Omit("Permissions.*").Create(row).Error; err != nil {
			return 0, err
		}
		if _, ok := st.roles[r.Name]; !ok {
			st.roles[r.Name] = row
		}
	}
	return len(seeds), nil
}

func (s *Seeder) seedUsers(tx *gorm.DB, seeds []UserSeed, st stores) (int, error) {
	for _, u := range seeds {
		hash, err := s.hasher.Hash(u.Password)
		if err != nil {
			return 0, fmt.Errorf("failed to hash password of %s: %w", u.Username, err)
		}

		row := &model.UserModel{
			UUID:     uuid.New(),
			Username: u.Username,
			Email:    u.Email,
			Password: hash,
		}

		if u.Role != "" {
			role, err := lookup(tx, st.roles, u.Role)
			if err != nil {
				return 0, err
			}
			if role != nil {
				row.RoleID = &role.ID
			}
		}
		for _, name := range u.Groups {
			group, err := lookup(tx, st.groups, name)
			if err != nil {
				return 0, err
			}
			if group != nil {
				row.Groups = append(row.Groups, *group)
			}
		}
		for name, value := range u.Attributes {
			row.Attributes = append(row.Attributes, model.AttributeModel{Name: name, Value: value})
		}

		if err := tx.Omit("Groups.*").Create(row).Error; err != nil {
			return 0, err
		}
	}
	return len(seeds), nil
}

// lookup finds a row by name, first among rows created in this run.
// It returns nil when no row has that name.
func lookup[T any](tx *gorm.DB, created map[string]*T, name string) (*T, error) {
	if row, ok := created[name]; ok {
		return row, nil
	}

	row := new(T)
	err := tx.Where("name = ?", name).First(row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %q: %w", name, err)
	}
	return row, nil
}
