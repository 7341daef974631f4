package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/livity/realestate-api/internal/application"
	"github.com/livity/realestate-api/internal/domain/entity"
	"github.com/livity/realestate-api/internal/interface/middleware"
	"github.com/livity/realestate-api/pkg/response"
	"github.com/livity/realestate-api/pkg/validation"
)

type ListingHandler struct {
	Svc            *application.ListingService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewListingHandler(svc *application.ListingService, logger *logrus.Logger, maxUploadBytes int64) *ListingHandler {
	return &ListingHandler{Svc: svc, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

type searchQuery struct {
	Search   string  `form:"search"`
	City     string  `form:"city"`
	Type     string  `form:"type" binding:"omitempty,listingtype"`
	MinPrice float64 `form:"minPrice" binding:"gte=0"`
	MaxPrice float64 `form:"maxPrice" binding:"gte=0"`
	Limit    int     `form:"limit" binding:"gte=0,lte=100"`
	Offset   int     `form:"offset" binding:"gte=0"`
}

// Create takes a multipart form: the listing fields, "address" as a JSON
// object string, and the file in "image".
func (h *ListingHandler) Create(c *gin.Context) {
	owner, ok := middleware.Principal(c)
	if !ok {
		fail(c, h.Logger, application.ErrUnauthorized)
		return
	}

	upload, f, err := openImage(c, h.MaxUploadBytes)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if f != nil {
		defer f.Close()
	}

	in, err := listingInput(c)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}

	l, err := h.Svc.Create(c.Request.Context(), owner, in, upload)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Respond(c, http.StatusCreated, gin.H{"property": l}, "listing created", nil)
}

func listingInput(c *gin.Context) (application.CreateListingInput, error) {
	in := application.CreateListingInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Price:       formFloat(c, "price"),
		Currency:    c.PostForm("currency"),
		Type:        entity.ListingType(c.PostForm("type")),
		Furnished:   formBool(c, "furnished"),
		Bedrooms:    int(formFloat(c, "bedrooms")),
		Bathrooms:   int(formFloat(c, "bathrooms")),
		AreaSqFt:    formFloat(c, "areaSqFt"),
	}
	if raw := strings.TrimSpace(c.PostForm("address")); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Address); err != nil {
			return in, &application.ValidationError{Message: "Address must be valid JSON", Fields: []string{"address"}}
		}
	}
	return in, nil
}

// formFloat reads a numeric form value; unparsable values read as zero so
// defaults and validation apply.
func formFloat(c *gin.Context, key string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(c.PostForm(key)), 64)
	if err != nil {
		return 0
	}
	return v
}

func formBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(c.PostForm(key)))
	return v
}

func (h *ListingHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	f := entity.ListingFilter{
		Search:   q.Search,
		City:     q.City,
		Type:     entity.ListingType(q.Type),
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	listings, err := h.Svc.Search(c.Request.Context(), f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Respond(c, http.StatusOK, gin.H{"listings": listings}, "listings", gin.H{"count": len(listings), "offset": q.Offset})
}

func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Respond(c, http.StatusOK, gin.H{"property": l}, "listing", nil)
}
