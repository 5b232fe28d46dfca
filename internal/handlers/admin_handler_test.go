package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/repositories"
	"mockmate/interview-api/internal/services"
)

type fakeIdentity struct {
	tokens     map[string]*services.Principal
	createErr  error
	deleteErr  error
	resetErr   error
	created    []string
	deleted    []string
	resetsSent []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{tokens: make(map[string]*services.Principal)}
}

func (f *fakeIdentity) VerifyToken(_ context.Context, idToken string) (*services.Principal, error) {
	principal, ok := f.tokens[idToken]
	if !ok {
		return nil, services.ErrInvalidToken
	}
	return principal, nil
}

func (f *fakeIdentity) CreateUser(_ context.Context, email, _ string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, email)
	return nil
}

func (f *fakeIdentity) DeleteUser(_ context.Context, email string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, email)
	return nil
}

func (f *fakeIdentity) SendPasswordReset(_ context.Context, email string) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.resetsSent = append(f.resetsSent, email)
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) List() ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Upsert(user *models.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserRepo) SetAdmin(email string, isAdmin bool) error {
	if u, ok := f.users[email]; ok {
		u.IsAdmin = isAdmin
	} else {
		f.users[email] = &models.User{Email: email, IsAdmin: isAdmin}
	}
	return nil
}

func (f *fakeUserRepo) Delete(email string) error {
	delete(f.users, email)
	return nil
}

func newAdminApp(identity services.IdentityService, users repositories.UserRepository) *fiber.App {
	app := fiber.New()
	h := NewAdminHandler(identity, users, validator.New())

	admin := app.Group("/admin", h.RequireAuth)
	admin.Get("/check", h.HandleCheck)
	admin.Get("/users", h.HandleListUsers)
	admin.Post("/toggle-admin", h.HandleToggleAdmin)
	admin.Post("/create-user", h.HandleCreateUser)
	admin.Delete("/delete-user", h.HandleDeleteUser)

	return app
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func seedAdminFixtures() (*fakeIdentity, *fakeUserRepo) {
	identity := newFakeIdentity()
	identity.tokens["admin-token"] = &services.Principal{UID: "u1", Email: "admin@example.com"}
	identity.tokens["user-token"] = &services.Principal{UID: "u2", Email: "user@example.com"}

	users := newFakeUserRepo()
	users.users["admin@example.com"] = &models.User{Email: "admin@example.com", IsAdmin: true}
	users.users["user@example.com"] = &models.User{Email: "user@example.com"}

	return identity, users
}

func TestAdmin_MissingToken(t *testing.T) {
	app := newAdminApp(seedAdminFixtures())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/users", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdmin_InvalidToken(t *testing.T) {
	app := newAdminApp(seedAdminFixtures())

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdmin_NonAdminForbidden(t *testing.T) {
	app := newAdminApp(seedAdminFixtures())

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdmin_ListUsers(t *testing.T) {
	app := newAdminApp(seedAdminFixtures())

	req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var users []models.AdminUser
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	assert.Len(t, users, 2)
}

func TestAdmin_Check(t *testing.T) {
	app := newAdminApp(seedAdminFixtures())

	for token, want := range map[string]bool{"admin-token": true, "user-token": false} {
		req := httptest.NewRequest(http.MethodGet, "/admin/check", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]bool
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, want, body["is_admin"], "token %s", token)
	}
}

func TestAdmin_ToggleAdmin(t *testing.T) {
	identity, users := seedAdminFixtures()
	app := newAdminApp(identity, users)

	req := jsonRequest(http.MethodPost, "/admin/toggle-admin",
		models.ToggleAdminRequest{Email: "user@example.com", IsAdmin: true})
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, users.users["user@example.com"].IsAdmin)
}

func TestAdmin_CreateUser(t *testing.T) {
	identity, users := seedAdminFixtures()
	app := newAdminApp(identity, users)

	req := jsonRequest(http.MethodPost, "/admin/create-user",
		models.CreateUserRequest{Email: "new@example.com", Password: "secret1", IsAdmin: false})
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"new@example.com"}, identity.created)
	assert.Equal(t, []string{"new@example.com"}, identity.resetsSent)
	assert.Contains(t, users.users, "new@example.com")
}

func TestAdmin_CreateUser_AlreadyExists(t *testing.T) {
	identity, users := seedAdminFixtures()
	identity.createErr = services.ErrEmailExists
	app := newAdminApp(identity, users)

	req := jsonRequest(http.MethodPost, "/admin/create-user",
		models.CreateUserRequest{Email: "dup@example.com", Password: "secret1"})
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdmin_CreateUser_ResetEmailFailure(t *testing.T) {
	identity, users := seedAdminFixtures()
	identity.resetErr = fmt.Errorf("smtp down")
	app := newAdminApp(identity, users)

	req := jsonRequest(http.MethodPost, "/admin/create-user",
		models.CreateUserRequest{Email: "new@example.com", Password: "secret1"})
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestAdmin_DeleteUser(t *testing.T) {
	identity, users := seedAdminFixtures()
	app := newAdminApp(identity, users)

	req := jsonRequest(http.MethodDelete, "/admin/delete-user",
		models.DeleteUserRequest{Email: "user@example.com"})
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"user@example.com"}, identity.deleted)
	assert.NotContains(t, users.users, "user@example.com")
}

func TestAdmin_DeleteUser_MissingInProvider(t *testing.T) {
	identity, users := seedAdminFixtures()
	identity.deleteErr = services.ErrIdentityMissing
	app := newAdminApp(identity, users)

	req := jsonRequest(http.MethodDelete, "/admin/delete-user",
		models.DeleteUserRequest{Email: "ghost@example.com"})
	req.Header.Set("Authorization", "Bearer admin-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "User not found in identity provider.", body["message"])
}
