package usecase

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/stockroom/backend/internal/domain"
	"github.com/stockroom/backend/pkg/logger"
)

// demoUsers are the built-in accounts: username -> password, role
var demoUsers = []struct {
	username string
	password string
	role     domain.Role
}{
	{"admin", "admin123", domain.RoleAdmin},
	{"worker", "worker123", domain.RoleWorker},
	{"supervisor", "sup123", domain.RoleSupervisor},
}

type account struct {
	hash []byte
	role domain.Role
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	BcryptCost int
}

// AuthService handles login, token verification and the permission matrix
type AuthService struct {
	accounts  map[string]account
	tokens    domain.TokenIssuer
	perms     domain.PermissionRepository
	inventory *Inventory

	mu     sync.RWMutex
	matrix domain.PermissionMatrix
}

// NewAuthService creates an auth service. Demo passwords are hashed once here.
func NewAuthService(
	ctx context.Context,
	tokens domain.TokenIssuer,
	perms domain.PermissionRepository,
	inventory *Inventory,
	config AuthServiceConfig,
) (*AuthService, error) {
	cost := config.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	accounts := make(map[string]account, len(demoUsers))
	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.username, err)
		}
		accounts[u.username] = account{hash: hash, role: u.role}
	}

	matrix, err := perms.LoadPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load permissions: %w", err)
	}

	return &AuthService{
		accounts:  accounts,
		tokens:    tokens,
		perms:     perms,
		inventory: inventory,
		matrix:    matrix,
	}, nil
}

// Login checks username, password and role together and issues a token
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	acct, ok := s.accounts[req.Username]
	if !ok || acct.role != req.Role {
		logger.Warn(ctx, "login rejected", "username", req.Username, "role", req.Role)
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.hash, []byte(req.Password)); err != nil {
		logger.Warn(ctx, "login rejected", "username", req.Username, "role", req.Role)
		return nil, domain.ErrInvalidCredentials
	}

	session := domain.Session{Username: req.Username, Role: acct.role}
	token, expiresAt, err := s.tokens.Issue(session)
	if err != nil {
		return nil, err
	}

	s.inventory.RecordActivity(ctx, fmt.Sprintf("%s logged in as %s", session.Username, session.Role))

	return &domain.LoginResponse{
		Token:       token,
		ExpiresAt:   expiresAt.Unix(),
		Session:     session,
		Permissions: s.rolePermissions(session.Role),
	}, nil
}

// Authenticate verifies a bearer token
func (s *AuthService) Authenticate(token string) (domain.Session, error) {
	return s.tokens.Verify(token)
}

// Authorize returns ErrForbidden unless the session's role holds perm
func (s *AuthService) Authorize(session domain.Session, perm domain.Permission) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.matrix.Allows(session.Role, perm) {
		return fmt.Errorf("%w: %s requires %q", domain.ErrForbidden, session.Role, perm)
	}
	return nil
}

// Permissions returns a copy of the current matrix
func (s *AuthService) Permissions() domain.PermissionMatrix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMatrix(s.matrix)
}

// SetPermissions replaces the matrix on behalf of user. Unknown roles or
// permissions are rejected; admin always keeps every permission.
func (s *AuthService) SetPermissions(ctx context.Context, user string, matrix domain.PermissionMatrix) (domain.PermissionMatrix, error) {
	next := make(domain.PermissionMatrix, len(domain.Roles))
	for role, set := range matrix {
		if !role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidRequest, role)
		}
		next[role] = make(domain.PermissionSet, len(domain.Permissions))
		for perm, granted := range set {
			if !knownPermission(perm) {
				return nil, fmt.Errorf("%w: unknown permission %q", domain.ErrInvalidRequest, perm)
			}
			next[role][perm] = granted
		}
	}
	for _, role := range domain.Roles {
		if next[role] == nil {
			next[role] = make(domain.PermissionSet, len(domain.Permissions))
		}
		for _, perm := range domain.Permissions {
			if role == domain.RoleAdmin {
				next[role][perm] = true
			} else if _, ok := next[role][perm]; !ok {
				next[role][perm] = false
			}
		}
	}

	s.mu.Lock()
	if err := s.perms.SavePermissions(ctx, next); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("save permissions: %w", err)
	}
	s.matrix = next
	s.mu.Unlock()

	logger.Info(ctx, "permissions updated", "user", user)
	s.inventory.RecordActivity(ctx, fmt.Sprintf("%s updated user permissions", user))
	return copyMatrix(next), nil
}

// ResetPermissions restores the default matrix on behalf of user
func (s *AuthService) ResetPermissions(ctx context.Context, user string) (domain.PermissionMatrix, error) {
	defaults := domain.DefaultPermissions()

	s.mu.Lock()
	if err := s.perms.ResetPermissions(ctx); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("reset permissions: %w", err)
	}
	s.matrix = defaults
	s.mu.Unlock()

	logger.Info(ctx, "permissions reset to default", "user", user)
	s.inventory.RecordActivity(ctx, fmt.Sprintf("%s reset user permissions to default", user))
	return copyMatrix(defaults), nil
}

func (s *AuthService) rolePermissions(role domain.Role) domain.PermissionSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(domain.PermissionSet, len(s.matrix[role]))
	for perm, granted := range s.matrix[role] {
		out[perm] = granted
	}
	return out
}

func knownPermission(perm domain.Permission) bool {
	for _, p := range domain.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

func copyMatrix(m domain.PermissionMatrix) domain.PermissionMatrix {
	out := make(domain.PermissionMatrix, len(m))
	for role, set := range m {
		out[role] = make(domain.PermissionSet, len(set))
		for perm, granted := range set {
			out[role][perm] = granted
		}
	}
	return out
}
