package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"mockmate/interview-api/internal/models"
	"mockmate/interview-api/internal/repositories"
	"mockmate/interview-api/internal/services"
)

const principalKey = "principal"

type AdminHandler struct {
	identity services.IdentityService
	userRepo repositories.UserRepository
	validate *validator.Validate
}

func NewAdminHandler(
	identity services.IdentityService,
	userRepo repositories.UserRepository,
	validate *validator.Validate,
) *AdminHandler {
	return &AdminHandler{
		identity: identity,
		userRepo: userRepo,
		validate: validate,
	}
}

// RequireAuth verifies the bearer ID token and stores the principal in the
// request locals. 401 on anything short of a valid token.
func (h *AdminHandler) RequireAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing or invalid token",
		})
	}

	principal, err := h.identity.VerifyToken(c.UserContext(), parts[1])
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid token",
		})
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

func (h *AdminHandler) principal(c *fiber.Ctx) *services.Principal {
	principal, _ := c.Locals(principalKey).(*services.Principal)
	return principal
}

// requireAdmin checks the boolean admin flag on the caller's user document.
func (h *AdminHandler) requireAdmin(c *fiber.Ctx) error {
	principal := h.principal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing or invalid token",
		})
	}

	user, err := h.userRepo.FindByEmail(principal.Email)
	if err != nil || !user.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin rights required.",
		})
	}
	return nil
}

// HandleCheck handles GET /admin/check. Needs a valid token but not the
// admin flag.
func (h *AdminHandler) HandleCheck(c *fiber.Ctx) error {
	principal := h.principal(c)
	if principal == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Missing or invalid token",
		})
	}

	user, err := h.userRepo.FindByEmail(principal.Email)
	isAdmin := err == nil && user.IsAdmin
	return c.JSON(fiber.Map{"is_admin": isAdmin})
}

// HandleListUsers handles GET /admin/users.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	users, err := h.userRepo.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list users",
		})
	}

	out := make([]models.AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, models.AdminUser{Email: u.Email, IsAdmin: u.IsAdmin})
	}
	return c.JSON(out)
}

// HandleToggleAdmin handles POST /admin/toggle-admin.
func (h *AdminHandler) HandleToggleAdmin(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	var req models.ToggleAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing email.",
		})
	}

	if err := h.userRepo.SetAdmin(req.Email, req.IsAdmin); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update admin status",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Admin status for %s updated to %t.", req.Email, req.IsAdmin),
	})
}

// HandleCreateUser handles POST /admin/create-user: creates the identity
// account, upserts the user row, then sends a password-reset email.
func (h *AdminHandler) HandleCreateUser(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required.",
		})
	}

	if err := h.identity.CreateUser(c.UserContext(), req.Email, req.Password); err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User already exists.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user",
		})
	}

	if err := h.userRepo.Upsert(&models.User{
		Email:         req.Email,
		IsAdmin:       req.IsAdmin,
		EmailVerified: true,
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save user record",
		})
	}

	if err := h.identity.SendPasswordReset(c.UserContext(), req.Email); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "User created, but failed to send password reset email.",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("User %s created and password reset email sent.", req.Email),
	})
}

// HandleDeleteUser handles DELETE /admin/delete-user: removes the account
// from the identity provider and the users table.
func (h *AdminHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}

	var req models.DeleteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing email.",
		})
	}

	if err := h.identity.DeleteUser(c.UserContext(), req.Email); err != nil {
		if errors.Is(err, services.ErrIdentityMissing) {
			return c.JSON(fiber.Map{"message": "User not found in identity provider."})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete user",
		})
	}

	if err := h.userRepo.Delete(req.Email); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete user record",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("User %s deleted successfully.", req.Email),
	})
}
