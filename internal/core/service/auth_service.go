package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/learning/securedapp/internal/api/metrics"
	"github.com/learning/securedapp/internal/core/domain"
	"github.com/learning/securedapp/internal/core/ports"
	"github.com/learning/securedapp/internal/pkg/password"
)

// AuthService verifies credentials and issues HS256 tokens. The token
// carries role names and the flattened permission union so the enforcement
// layer never touches the catalog on a request path.
type AuthService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	encoder   *password.Encoder
	audit     AuditRecorder
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	encoder *password.Encoder,
	audit AuditRecorder,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		roles:     roles,
		encoder:   encoder,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) Login(ctx context.Context, username, plaintext string) (string, *domain.User, error) {
	if username == "" || plaintext == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Same failure as a wrong password so probes cannot enumerate
			// usernames.
			s.loginFailed(username, "unknown user")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !user.Enabled {
		s.loginFailed(username, "account disabled")
		return "", nil, domain.ErrInvalidCredentials
	}
	if !s.encoder.Verify(plaintext, user.PasswordHash) {
		s.loginFailed(username, "bad password")
		return "", nil, domain.ErrInvalidCredentials
	}

	catalog, err := s.roles.FindAll(ctx)
	if err != nil {
		return "", nil, err
	}
	byID := roleIndex(catalog)
	populateRoles(user, byID)

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	if s.audit != nil {
		s.audit.Record(domain.AuditEvent{
			Username:  user.Username,
			Action:    domain.AuditLoginSuccess,
			Timestamp: time.Now().UTC(),
		})
	}
	return token, user, nil
}

func (s *AuthService) loginFailed(username, reason string) {
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
	s.log.Info().Str("username", username).Str("reason", reason).Msg("login rejected")
	if s.audit != nil {
		s.audit.Record(domain.AuditEvent{
			Username:  username,
			Action:    domain.AuditLoginFailure,
			Detail:    reason,
			Timestamp: time.Now().UTC(),
		})
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	roleNames := make([]string, 0, len(user.Roles))
	permSet := make(map[string]struct{})
	for _, role := range user.Roles {
		roleNames = append(roleNames, role.Name)
		for _, p := range role.Permissions {
			permSet[p] = struct{}{}
		}
	}
	permissions := make([]string, 0, len(permSet))
	for p := range permSet {
		permissions = append(permissions, p)
	}

	claims := jwt.MapClaims{
		"username":    user.Username,
		"roles":       roleNames,
		"permissions": permissions,
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
