package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/parcelly/dto"
	"github.com/princinho/parcelly/models"
	"github.com/princinho/parcelly/repository"
	"github.com/princinho/parcelly/storage"
	"github.com/princinho/parcelly/utils"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// multipartOverhead covers the form boundaries and part headers around the
// proof image.
const multipartOverhead = 64 << 10

type ParcelController struct {
	parcels   repository.ParcelRepository
	users     repository.UserRepository
	store     storage.ObjectStore
	validator *utils.FileValidator
}

// NewParcelController wires the parcel handlers. store may be nil, in which
// case proof uploads answer 503.
func NewParcelController(
	parcels repository.ParcelRepository,
	users repository.UserRepository,
	store storage.ObjectStore,
	validator *utils.FileValidator,
) *ParcelController {
	return &ParcelController{parcels: parcels, users: users, store: store, validator: validator}
}

// GET /parcel
func (pc *ParcelController) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := pc.parcels.List(c.Request.Context())
		if err != nil {
			serverError(c, "failed to fetch parcels", err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// GET /parcel/:email
func (pc *ParcelController) ListByEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := pc.parcels.ListByEmail(c.Request.Context(), c.Param("email"))
		if err != nil {
			serverError(c, "failed to fetch parcels", err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// GET /parcel/g/:id
func (pc *ParcelController) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		doc, err := pc.parcels.FindByID(c.Request.Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
			return
		}
		if err != nil {
			serverError(c, "failed to fetch parcel", err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

// POST /parcel
func (pc *ParcelController) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := bindDocument(c)
		if !ok {
			return
		}

		res, err := pc.parcels.Create(c.Request.Context(), body)
		if err != nil {
			serverError(c, "failed to create parcel", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// DELETE /parcel/:id
func (pc *ParcelController) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		res, err := pc.parcels.Delete(c.Request.Context(), id)
		if err != nil {
			serverError(c, "failed to delete parcel", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// PUT /parcel/u/:id
// Merges the body into the parcel, creating it under this id when absent.
func (pc *ParcelController) AssignDeliveryMan() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		body, ok := bindDocument(c)
		if !ok {
			return
		}

		res, err := pc.parcels.Update(c.Request.Context(), id, models.FieldUpdate{
			Mode:   models.MergeFields,
			Fields: body,
			Upsert: true,
		})
		if errors.Is(err, repository.ErrEmptyUpdate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			serverError(c, "failed to update parcel", err)
			return
		}
		if res.MatchedCount == 0 && res.UpsertedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Updated successfully"})
	}
}

// PATCH /parcel/:id
// Structured update; refused while the stored status is "On The Way".
func (pc *ParcelController) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, ok := idParam(c)
		if !ok {
			return
		}

		body, ok := bindDocument(c)
		if !ok {
			return
		}
		fields, err := repository.BuildSet(models.FieldUpdate{
			Mode:   models.ReplaceAllowListed,
			Fields: body,
		}, models.ParcelEditableFields)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := dto.ValidateParcelUpdate(fields); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		existing, err := pc.parcels.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
			return
		}
		if err != nil {
			serverError(c, "failed to fetch parcel", err)
			return
		}

		status := models.ParcelStatus(models.StringField(existing, models.ParcelFieldStatus))
		if status.IsLocked() {
			c.JSON(http.StatusForbidden, gin.H{"error": `Updates are not allowed for parcels that are "On The Way"`})
			return
		}

		res, err := pc.parcels.Update(ctx, id, models.FieldUpdate{
			Mode:   models.ReplaceAllowListed,
			Fields: fields,
		})
		if err != nil {
			serverError(c, "An error occurred while updating the parcel", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// PATCH /parcel/gone/:id
func (pc *ParcelController) MarkGone() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		body, ok := bindDocument(c)
		if !ok {
			return
		}

		res, err := pc.parcels.Update(c.Request.Context(), id, models.FieldUpdate{
			Mode:   models.MergeFields,
			Fields: body,
		})
		if errors.Is(err, repository.ErrEmptyUpdate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			serverError(c, "failed to update parcel", err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// PATCH /parcel/cancel/:id
func (pc *ParcelController) Cancel() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		res, err := pc.parcels.Update(c.Request.Context(), id, models.FieldUpdate{
			Mode:   models.MergeFields,
			Fields: bson.M{models.ParcelFieldStatus: string(models.ParcelStatusCanceled)},
		})
		if err != nil {
			serverError(c, "failed to cancel parcel", err)
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// GET /parcel/delivery/:email
func (pc *ParcelController) ListForDeliveryMan() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user, err := pc.users.FindByEmail(ctx, c.Param("email"))
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, []models.Document{})
			return
		}
		if err != nil {
			serverError(c, "failed to fetch user", err)
			return
		}

		docs, err := pc.parcels.ListByDeliveryMan(ctx, models.DocumentID(user))
		if err != nil {
			serverError(c, "failed to fetch parcels", err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// PATCH /parcel/proof/:id
// multipart/form-data:
//   - image: proof-of-delivery photo (jpg/jpeg/png/webp)
func (pc *ParcelController) UploadProof() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, ok := idParam(c)
		if !ok {
			return
		}

		if pc.store == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "proof upload is not configured"})
			return
		}

		limit := pc.validator.MaxSize() + multipartOverhead
		if c.Request.ContentLength > limit {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("file too large (max %d MB)", pc.validator.MaxSize()>>20)})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

		fh, err := c.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("file too large (max %d MB)", pc.validator.MaxSize()>>20)})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
			return
		}
		mimeType, err := pc.validator.ValidateFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if _, err := pc.parcels.FindByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
				return
			}
			serverError(c, "failed to fetch parcel", err)
			return
		}

		f, err := fh.Open()
		if err != nil {
			serverError(c, "failed to read image", err)
			return
		}
		defer f.Close()

		key := storage.ProofObjectKey(id.Hex(), fh.Filename, time.Now())
		url, err := pc.store.Put(ctx, key, f, mimeType)
		if err != nil {
			serverError(c, "failed to upload image", err)
			return
		}

		res, err := pc.parcels.Update(ctx, id, models.FieldUpdate{
			Mode:   models.MergeFields,
			Fields: bson.M{models.ParcelFieldProofImageURL: url},
		})
		if err != nil || res.MatchedCount == 0 {
			if delErr := pc.store.Delete(ctx, key); delErr != nil {
				zerolog.Ctx(ctx).Warn().Err(delErr).Str("key", key).Msg("failed to remove orphaned proof image")
			}
			if err != nil {
				serverError(c, "failed to save proof image", err)
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": "Parcel not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"proofImageUrl": url})
	}
}
