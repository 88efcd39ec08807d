package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/parcelly/models"
	"github.com/princinho/parcelly/repository"
)

type ReviewController struct {
	reviews repository.ReviewRepository
	users   repository.UserRepository
}

func NewReviewController(reviews repository.ReviewRepository, users repository.UserRepository) *ReviewController {
	return &ReviewController{reviews: reviews, users: users}
}

// GET /reviews
func (rc *ReviewController) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := rc.reviews.List(c.Request.Context())
		if err != nil {
			serverError(c, "failed to fetch reviews", err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// POST /reviews
func (rc *ReviewController) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := bindDocument(c)
		if !ok {
			return
		}

		res, err := rc.reviews.Create(c.Request.Context(), body)
		if err != nil {
			serverError(c, "failed to create review", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// GET /reviews/deliveryManId/:email
// Only readable for users whose role is "Delivery Man".
func (rc *ReviewController) ListForDeliveryMan() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user, err := rc.users.FindByEmail(ctx, c.Param("email"))
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			serverError(c, "failed to fetch user", err)
			return
		}
		if user == nil || models.UserRole(user) != models.RoleDeliveryMan {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		docs, err := rc.reviews.ListByDeliveryMan(ctx, models.DocumentID(user))
		if err != nil {
			serverError(c, "failed to fetch reviews", err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}
