package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mdriyazakondo/book-curriter-server/internal/middleware"
	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/repositories"
	"github.com/mdriyazakondo/book-curriter-server/internal/services"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes. Fixed paths are registered
// before the parameterized ones.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler, require func(models.Permission) fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/role", h.HandleGetRole)
	userRoutes.Post("/", h.HandleSignIn)
	userRoutes.Get("/", auth, require(models.PermManageUsers), h.HandleGetAllUsers)
	userRoutes.Patch("/role", auth, require(models.PermManageUsers), h.HandleUpdateRole)
	userRoutes.Get("/:email", auth, h.HandleGetUser)
	userRoutes.Patch("/:id", auth, h.HandleUpdateProfile)
}

// HandleGetAllUsers lists every user except the caller.
func (h *UserHandler) HandleGetAllUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllExcept(middleware.Principal(c))
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleGetRole returns the stored role for an email.
func (h *UserHandler) HandleGetRole(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email is required",
		})
	}
	role, err := h.userService.GetRole(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		log.Printf("Error getting role for %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve role",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"role": role})
}

// HandleGetUser returns a user's profile.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	email := c.Params("email")
	user, err := h.userService.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error getting user %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve user",
			"error":   err.Error(),
		})
	}
	return c.JSON(user)
}

// SignInRequest represents a sign-in notification from the client.
type SignInRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Image string `json:"image" validate:"omitempty,url"`
}

// HandleSignIn upserts a user on sign-in: existing accounts get their
// last-login refreshed, new ones are created as customers.
func (h *UserHandler) HandleSignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user := models.User{Name: req.Name, Email: req.Email, Image: req.Image}
	created, err := h.userService.UpsertOnSignIn(&user)
	if err != nil {
		log.Printf("Error upserting user %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not record sign-in",
			"error":   err.Error(),
		})
	}
	if created {
		return c.Status(fiber.StatusCreated).JSON(user)
	}
	return c.JSON(fiber.Map{"message": "Sign-in recorded"})
}

// UpdateProfileRequest represents a profile update.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image" validate:"omitempty,url"`
}

// HandleUpdateProfile updates a user's name and image.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	id := c.Params("id")
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.userService.UpdateProfile(id, req.Name, req.Image); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error updating profile %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Profile updated"})
}

// UpdateRoleRequest represents an admin role change.
type UpdateRoleRequest struct {
	Email string      `json:"email" validate:"required,email"`
	Role  models.Role `json:"role" validate:"required"`
}

// HandleUpdateRole sets a user's role.
func (h *UserHandler) HandleUpdateRole(c *fiber.Ctx) error {
	var req UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.userService.UpdateRole(req.Email, req.Role); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error updating role for %s: %v", req.Email, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not update role",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Role updated"})
}
