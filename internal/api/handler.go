package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"bilemo-backend/internal/auth"
	"bilemo-backend/internal/cache"
	"bilemo-backend/internal/model"
	"bilemo-backend/internal/mw"
	"bilemo-backend/internal/pagination"
	"bilemo-backend/internal/service"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	brands  *service.BrandService
	devices *service.DeviceService
	users   *service.UserService
	cache   *cache.TagStore
	tokens  *auth.TokenManager
	debug   bool
}

// NewHandler creates a new API handler.
func NewHandler(
	brands *service.BrandService,
	devices *service.DeviceService,
	users *service.UserService,
	tagCache *cache.TagStore,
	tokens *auth.TokenManager,
	debug bool,
) *Handler {
	return &Handler{
		brands:  brands,
		devices: devices,
		users:   users,
		cache:   tagCache,
		tokens:  tokens,
		debug:   debug,
	}
}

// Welcome handles the GET /api/ request.
func (h *Handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the BileMo API"})
}

// currentUser returns the authenticated user placed in the context by the
// auth middleware. Routes calling this must sit behind that middleware.
func currentUser(c *gin.Context) *model.User {
	return c.MustGet(mw.CurrentUserKey).(*model.User)
}

// pageParams parses and normalizes the page/pageSize query parameters.
func pageParams(c *gin.Context) pagination.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	return pagination.New(page, pageSize)
}

// queryList splits a comma-separated query parameter into trimmed,
// lowercased, non-empty values.
func queryList(c *gin.Context, name string) []string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}

	var values []string
	for _, v := range strings.Split(raw, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		values = append(values, strings.ToLower(v))
	}
	return values
}

// idParam parses the :id route parameter.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
