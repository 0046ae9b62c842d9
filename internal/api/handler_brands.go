package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bilemo-backend/internal/authz"
)

// Cache tags group entries by the resource kind they were built from, so
// one mutation can evict every affected payload.
const (
	tagBrands  = "brands"
	tagDevices = "devices"
	tagUsers   = "users"
)

const catalogDeniedMessage = "The customer you are attached to cannot use the API."

// GetBrands handles the GET /api/brands request.
func (h *Handler) GetBrands(c *gin.Context) {
	if !authz.CanViewCatalog(currentUser(c)) {
		abortForbidden(c, catalogDeniedMessage)
		return
	}

	p := pageParams(c)
	key := fmt.Sprintf("brands_%d_%d", p.Page, p.PageSize)

	body, err := h.cache.GetOrCompute(key, []string{tagBrands}, func() ([]byte, error) {
		brands, total, err := h.brands.FindPage(c.Request.Context(), p)
		if err != nil {
			return nil, err
		}

		counts, err := h.brands.DeviceCounts(c.Request.Context())
		if err != nil {
			return nil, err
		}

		return json.Marshal(newListEnvelope(p, newBrandIndexViews(brands, counts), total))
	})
	if err != nil {
		h.abortInternal(c, err)
		return
	}

	respondSerialized(c, http.StatusOK, body)
}

// GetBrand handles the GET /api/brands/{id} request.
func (h *Handler) GetBrand(c *gin.Context) {
	if !authz.CanViewCatalog(currentUser(c)) {
		abortForbidden(c, catalogDeniedMessage)
		return
	}

	id, ok := idParam(c)
	if !ok {
		abortError(c, http.StatusBadRequest, "Invalid brand ID")
		return
	}

	key := fmt.Sprintf("brand_%d", id)

	body, err := h.cache.GetOrCompute(key, []string{tagBrands}, func() ([]byte, error) {
		brand, err := h.brands.FindByID(c.Request.Context(), id)
		if err != nil {
			return nil, err
		}
		return json.Marshal(newBrandShowView(brand))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, "brand")
		} else {
			h.abortInternal(c, err)
		}
		return
	}

	respondSerialized(c, http.StatusOK, body)
}

// GetBrandDevices handles the GET /api/brands/{id}/devices request.
func (h *Handler) GetBrandDevices(c *gin.Context) {
	if !authz.CanViewCatalog(currentUser(c)) {
		abortForbidden(c, catalogDeniedMessage)
		return
	}

	id, ok := idParam(c)
	if !ok {
		abortError(c, http.StatusBadRequest, "Invalid brand ID")
		return
	}

	if _, err := h.brands.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, "brand")
		} else {
			h.abortInternal(c, err)
		}
		return
	}

	p := pageParams(c)
	types := queryList(c, "types")
	key := fmt.Sprintf("brand_%d_devices_%d_%d_%s", id, p.Page, p.PageSize, strings.Join(types, "-"))

	body, err := h.cache.GetOrCompute(key, []string{tagBrands, tagDevices}, func() ([]byte, error) {
		devices, total, err := h.brands.FindDevices(c.Request.Context(), id, p, types)
		if err != nil {
			return nil, err
		}
		return json.Marshal(newListEnvelope(p, newBrandDeviceViews(devices), total))
	})
	if err != nil {
		h.abortInternal(c, err)
		return
	}

	respondSerialized(c, http.StatusOK, body)
}

// DeleteBrand handles the DELETE /api/brands/{id} request. The brand's
// devices go with it; the cache entries built from either resource are
// invalidated once the delete has committed.
func (h *Handler) DeleteBrand(c *gin.Context) {
	if !authz.CanViewCatalog(currentUser(c)) {
		abortForbidden(c, catalogDeniedMessage)
		return
	}

	id, ok := idParam(c)
	if !ok {
		abortError(c, http.StatusBadRequest, "Invalid brand ID")
		return
	}

	if _, err := h.brands.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, "brand")
		} else {
			h.abortInternal(c, err)
		}
		return
	}

	if err := h.brands.Delete(c.Request.Context(), id); err != nil {
		h.abortInternal(c, err)
		return
	}

	h.cache.Invalidate(tagBrands, tagDevices)

	c.Status(http.StatusNoContent)
}
