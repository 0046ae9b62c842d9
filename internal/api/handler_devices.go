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

// GetDevices handles the GET /api/devices request.
func (h *Handler) GetDevices(c *gin.Context) {
	if !authz.CanViewCatalog(currentUser(c)) {
		abortForbidden(c, catalogDeniedMessage)
		return
	}

	p := pageParams(c)
	brandNames := queryList(c, "brands")
	types := queryList(c, "types")
	key := fmt.Sprintf("devices_%d_%d_%s_%s",
		p.Page, p.PageSize, strings.Join(brandNames, "-"), strings.Join(types, "-"))

	body, err := h.cache.GetOrCompute(key, []string{tagDevices}, func() ([]byte, error) {
		devices, total, err := h.devices.FindPage(c.Request.Context(), p, brandNames, types)
		if err != nil {
			return nil, err
		}
		return json.Marshal(newListEnvelope(p, newDeviceIndexViews(devices), total))
	})
	if err != nil {
		h.abortInternal(c, err)
		return
	}

	respondSerialized(c, http.StatusOK, body)
}

// GetDevice handles the GET /api/devices/{id} request.
func (h *Handler) GetDevice(c *gin.Context) {
	if !authz.CanViewCatalog(currentUser(c)) {
		abortForbidden(c, catalogDeniedMessage)
		return
	}

	id, ok := idParam(c)
	if !ok {
		abortError(c, http.StatusBadRequest, "Invalid device ID")
		return
	}

	key := fmt.Sprintf("device_%d", id)

	body, err := h.cache.GetOrCompute(key, []string{tagDevices}, func() ([]byte, error) {
		device, err := h.devices.FindByID(c.Request.Context(), id)
		if err != nil {
			return nil, err
		}
		return json.Marshal(newDeviceShowView(device))
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, "device")
		} else {
			h.abortInternal(c, err)
		}
		return
	}

	respondSerialized(c, http.StatusOK, body)
}
