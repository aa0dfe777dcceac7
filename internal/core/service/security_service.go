package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/learning/securedapp/internal/api/metrics"
	"github.com/learning/securedapp/internal/core/domain"
	"github.com/learning/securedapp/internal/core/ports"
	"github.com/learning/securedapp/internal/pkg/password"
)

// RoleCache caches the role catalog (Redis). All methods are best-effort:
// the service falls back to the repository when the cache misbehaves.
type RoleCache interface {
	Get(ctx context.Context) ([]*domain.Role, error)
	Set(ctx context.Context, roles []*domain.Role) error
	Invalidate(ctx context.Context) error
}

// AuditRecorder accepts audit events for asynchronous persistence.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// SecurityService implements ports.SecurityService. It holds no in-process
// locks across the validate→persist gap; the store's unique username index
// closes that race.
type SecurityService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	validator *UserValidator
	encoder   *password.Encoder
	cache     RoleCache
	audit     AuditRecorder
	log       zerolog.Logger
}

func NewSecurityService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	validator *UserValidator,
	encoder *password.Encoder,
	cache RoleCache,
	audit AuditRecorder,
	log zerolog.Logger,
) *SecurityService {
	return &SecurityService{
		users:     users,
		roles:     roles,
		validator: validator,
		encoder:   encoder,
		cache:     cache,
		audit:     audit,
		log:       log,
	}
}

// GetAllUsers returns every user with Roles populated. Full scan, no
// pagination.
func (s *SecurityService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.GetAllRoles(ctx)
	if err != nil {
		return nil, err
	}
	byID := roleIndex(catalog)
	for _, u := range users {
		populateRoles(u, byID)
	}
	return users, nil
}

// GetAllRoles returns the role catalog, served from the cache when warm.
func (s *SecurityService) GetAllRoles(ctx context.Context) ([]*domain.Role, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err != nil {
			s.log.Warn().Err(err).Msg("role cache read failed, falling back to store")
		} else if cached != nil {
			return cached, nil
		}
	}

	catalog, err := s.roles.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, catalog); err != nil {
			s.log.Warn().Err(err).Msg("role cache write failed")
		}
	}
	return catalog, nil
}

func (s *SecurityService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	catalog, err := s.GetAllRoles(ctx)
	if err != nil {
		return nil, err
	}
	populateRoles(user, roleIndex(catalog))
	return user, nil
}

// CreateUser validates, encodes the plaintext password and persists. The
// plaintext is cleared from the candidate before the repository sees it.
func (s *SecurityService) CreateUser(ctx context.Context, candidate *domain.User) (*domain.User, error) {
	if err := s.validator.Validate(ctx, candidate, false); err != nil {
		countValidationFailures(err)
		return nil, err
	}

	hash, err := s.encodePassword(candidate.Password)
	if err != nil {
		s.log.Error().Err(err).Msg("password encoding failed")
		return nil, domain.ErrPasswordEncoding
	}
	candidate.Password = ""
	candidate.PasswordHash = hash

	now := time.Now().UTC()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	created, err := s.users.Create(ctx, candidate)
	if err != nil {
		return nil, err
	}

	metrics.UsersCreatedTotal.Inc()
	s.log.Debug().Str("user_id", created.ID).Str("username", created.Username).Msg("user created")
	s.recordAudit(created.Username, domain.AuditUserCreated, "")

	catalog, err := s.GetAllRoles(ctx)
	if err != nil {
		return nil, err
	}
	populateRoles(created, roleIndex(catalog))
	return created, nil
}

// UpdateUser loads the stored record, merges the submitted role selection
// against the current catalog, re-validates and persists. A blank password
// keeps the stored hash untouched.
func (s *SecurityService) UpdateUser(ctx context.Context, candidate *domain.User) (*domain.User, error) {
	existing, err := s.users.FindByID(ctx, candidate.ID)
	if err != nil {
		return nil, err
	}

	catalog, err := s.GetAllRoles(ctx)
	if err != nil {
		return nil, err
	}
	candidate.RoleIDs = mergeRoleSelection(catalog, candidate.RoleIDs)

	if err := s.validator.Validate(ctx, candidate, true); err != nil {
		countValidationFailures(err)
		return nil, err
	}

	if candidate.Password == "" {
		candidate.PasswordHash = existing.PasswordHash
	} else {
		hash, err := s.encodePassword(candidate.Password)
		if err != nil {
			s.log.Error().Err(err).Msg("password encoding failed")
			return nil, domain.ErrPasswordEncoding
		}
		candidate.Password = ""
		candidate.PasswordHash = hash
	}

	candidate.CreatedAt = existing.CreatedAt
	candidate.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, candidate)
	if err != nil {
		return nil, err
	}

	metrics.UsersUpdatedTotal.Inc()
	s.log.Debug().Str("user_id", updated.ID).Str("username", updated.Username).Msg("user updated")
	s.recordAudit(updated.Username, domain.AuditUserUpdated, "")

	populateRoles(updated, roleIndex(catalog))
	return updated, nil
}

// CreateRole persists a role and invalidates the catalog cache.
func (s *SecurityService) CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error) {
	created, err := s.roles.Create(ctx, role)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("role cache invalidation failed")
		}
	}
	return created, nil
}

func (s *SecurityService) encodePassword(plaintext string) (string, error) {
	start := time.Now()
	hash, err := s.encoder.Encode(plaintext)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	return hash, err
}

func (s *SecurityService) recordAudit(username, action, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Username:  username,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}

// mergeRoleSelection keeps only submitted role ids that exist in the current
// catalog, deduplicated, in catalog order.
func mergeRoleSelection(catalog []*domain.Role, submitted []string) []string {
	want := make(map[string]struct{}, len(submitted))
	for _, id := range submitted {
		want[id] = struct{}{}
	}
	merged := make([]string, 0, len(want))
	for _, role := range catalog {
		if _, ok := want[role.ID]; ok {
			merged = append(merged, role.ID)
		}
	}
	return merged
}

func roleIndex(catalog []*domain.Role) map[string]*domain.Role {
	byID := make(map[string]*domain.Role, len(catalog))
	for _, r := range catalog {
		byID[r.ID] = r
	}
	return byID
}

func populateRoles(u *domain.User, byID map[string]*domain.Role) {
	u.Roles = make([]*domain.Role, 0, len(u.RoleIDs))
	for _, id := range u.RoleIDs {
		if r, ok := byID[id]; ok {
			u.Roles = append(u.Roles, r)
		}
	}
}

func countValidationFailures(err error) {
	if ve, ok := err.(*domain.ValidationError); ok {
		for _, fe := range ve.Fields {
			metrics.ValidationFailuresTotal.WithLabelValues(fe.Field).Inc()
		}
	}
}
