package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/princinho/parcelly/models"
	"github.com/princinho/parcelly/repository"
	"github.com/princinho/parcelly/utils"
	"github.com/rs/zerolog"
)

type UserController struct {
	users repository.UserRepository
}

func NewUserController(users repository.UserRepository) *UserController {
	return &UserController{users: users}
}

// POST /users
func (uc *UserController) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := bindDocument(c)
		if !ok {
			return
		}

		res, err := uc.users.Create(c.Request.Context(), body)
		if utils.IsDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "a user with this email already exists", "field": "email"})
			return
		}
		if err != nil {
			serverError(c, "failed to create user", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// PUT /users
// First write wins: an existing user is returned untouched, otherwise the
// body is upserted keyed by its email.
func (uc *UserController) Upsert() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		body, ok := bindDocument(c)
		if !ok {
			return
		}
		email := strings.TrimSpace(models.StringField(body, models.UserFieldEmail))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
			return
		}

		existing, err := uc.users.FindByEmail(ctx, email)
		if err == nil {
			c.JSON(http.StatusOK, existing)
			return
		}
		if !errors.Is(err, repository.ErrNotFound) {
			serverError(c, "failed to fetch user", err)
			return
		}

		res, err := uc.users.UpsertByEmail(ctx, email, body)
		if err != nil {
			serverError(c, "failed to save user", err)
			return
		}
		zerolog.Ctx(ctx).Info().Str("email", email).Msg("user registered")
		c.JSON(http.StatusOK, res)
	}
}

// PATCH /users/deliveryMan/:id
func (uc *UserController) PromoteToDeliveryMan() gin.HandlerFunc {
	return uc.promote(models.RoleDeliveryMan)
}

// PATCH /users/admin/:id
func (uc *UserController) PromoteToAdmin() gin.HandlerFunc {
	return uc.promote(models.RoleAdmin)
}

func (uc *UserController) promote(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		res, err := uc.users.SetRole(c.Request.Context(), id, role)
		if err != nil {
			serverError(c, "failed to update user role", err)
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// GET /users
func (uc *UserController) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := uc.users.List(c.Request.Context())
		if err != nil {
			serverError(c, "failed to fetch users", err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// GET /users/:email
func (uc *UserController) GetByEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := uc.users.FindByEmail(c.Request.Context(), c.Param("email"))
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			serverError(c, "failed to fetch user", err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

// GET /users/u/delivery
func (uc *UserController) ListDeliveryMen() gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := uc.users.ListByRole(c.Request.Context(), models.RoleDeliveryMan)
		if err != nil {
			serverError(c, "failed to fetch delivery men", err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}
