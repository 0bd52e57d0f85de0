package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockroom/backend/internal/domain"
)

func newTestAuthService(t *testing.T) (*AuthService, *MockPermissionRepository, *MockInventoryRepository) {
	t.Helper()
	inv, repo := newTestInventory(t)
	perms := &MockPermissionRepository{}
	svc, err := NewAuthService(context.Background(), MockTokenIssuer{}, perms, inv, AuthServiceConfig{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	return svc, perms, repo
}

func TestAuthService_Login(t *testing.T) {
	svc, _, repo := newTestAuthService(t)

	tests := []struct {
		name    string
		req     domain.LoginRequest
		wantErr error
	}{
		{name: "admin", req: domain.LoginRequest{Username: "admin", Password: "admin123", Role: domain.RoleAdmin}},
		{name: "supervisor", req: domain.LoginRequest{Username: "supervisor", Password: "sup123", Role: domain.RoleSupervisor}},
		{name: "worker", req: domain.LoginRequest{Username: "worker", Password: "worker123", Role: domain.RoleWorker}},
		{name: "wrong password", req: domain.LoginRequest{Username: "admin", Password: "nope", Role: domain.RoleAdmin}, wantErr: domain.ErrInvalidCredentials},
		{name: "wrong role", req: domain.LoginRequest{Username: "worker", Password: "worker123", Role: domain.RoleAdmin}, wantErr: domain.ErrInvalidCredentials},
		{name: "unknown user", req: domain.LoginRequest{Username: "ghost", Password: "x", Role: domain.RoleWorker}, wantErr: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Username+":"+string(tt.req.Role), resp.Token)
			assert.Equal(t, tt.req.Role, resp.Session.Role)
			assert.True(t, resp.Permissions[domain.PermView])
		})
	}

	require.Len(t, repo.activities, 3)
	assert.Equal(t, "admin logged in as admin", repo.activities[0].Message)
}

func TestAuthService_Authorize(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	tests := []struct {
		role    domain.Role
		perm    domain.Permission
		allowed bool
	}{
		{domain.RoleAdmin, domain.PermDelete, true},
		{domain.RoleSupervisor, domain.PermImport, true},
		{domain.RoleSupervisor, domain.PermDelete, false},
		{domain.RoleWorker, domain.PermBarcode, true},
		{domain.RoleWorker, domain.PermImport, false},
		{domain.Role("guest"), domain.PermView, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.perm), func(t *testing.T) {
			err := svc.Authorize(domain.Session{Username: "u", Role: tt.role}, tt.perm)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}

func TestAuthService_SetAndResetPermissions(t *testing.T) {
	svc, perms, repo := newTestAuthService(t)
	ctx := context.Background()
	worker := domain.Session{Username: "worker", Role: domain.RoleWorker}

	matrix, err := svc.SetPermissions(ctx, "admin", domain.PermissionMatrix{
		domain.RoleWorker: {domain.PermImport: true},
		domain.RoleAdmin:  {domain.PermDelete: false},
	})
	require.NoError(t, err)

	assert.True(t, matrix[domain.RoleAdmin][domain.PermDelete])
	assert.False(t, matrix[domain.RoleWorker][domain.PermView])
	assert.False(t, matrix[domain.RoleSupervisor][domain.PermView])
	assert.NoError(t, svc.Authorize(worker, domain.PermImport))
	assert.Equal(t, matrix, perms.matrix)
	require.Len(t, repo.activities, 1)
	assert.Equal(t, "admin updated user permissions", repo.activities[0].Message)

	_, err = svc.SetPermissions(ctx, "admin", domain.PermissionMatrix{"root": {domain.PermView: true}})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
	_, err = svc.SetPermissions(ctx, "admin", domain.PermissionMatrix{domain.RoleWorker: {"fly": true}})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	require.Len(t, repo.activities, 1, "rejected matrices are not logged")

	reset, err := svc.ResetPermissions(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPermissions(), reset)
	assert.ErrorIs(t, svc.Authorize(worker, domain.PermImport), domain.ErrForbidden)
	assert.Nil(t, perms.matrix)
	require.Len(t, repo.activities, 2)
	assert.Equal(t, "admin reset user permissions to default", repo.activities[1].Message)
}

func TestAuthService_PermissionsIsACopy(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	m := svc.Permissions()
	m[domain.RoleWorker][domain.PermDelete] = true

	assert.ErrorIs(t, svc.Authorize(domain.Session{Role: domain.RoleWorker}, domain.PermDelete), domain.ErrForbidden)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	session, err := svc.Authenticate("admin:admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, session.Role)

	_, err = svc.Authenticate("garbage")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
