package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bilemo-backend/internal/authz"
	"bilemo-backend/internal/service"
)

type createUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Fullname string `json:"fullname" binding:"required"`
	Password string `json:"password" binding:"required,min=10"`
}

type updateUserRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Fullname string `json:"fullname"`
	Password string `json:"password" binding:"omitempty,min=10"`
}

// GetUsers handles the GET /api/users request. The listing is always
// scoped to the caller's customer by the store, not by the voter.
func (h *Handler) GetUsers(c *gin.Context) {
	actor := currentUser(c)
	if !authz.CanListUsers(actor) {
		abortForbidden(c, "You cannot view users")
		return
	}

	p := pageParams(c)
	key := fmt.Sprintf("users_%d_%d_%d", actor.CustomerID, p.Page, p.PageSize)

	body, err := h.cache.GetOrCompute(key, []string{tagUsers}, func() ([]byte, error) {
		users, total, err := h.users.FindPage(c.Request.Context(), actor.CustomerID, p)
		if err != nil {
			return nil, err
		}
		return json.Marshal(newListEnvelope(p, newUserIndexViews(users), total))
	})
	if err != nil {
		h.abortInternal(c, err)
		return
	}

	respondSerialized(c, http.StatusOK, body)
}

// GetUser handles the GET /api/users/{id} request.
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		abortError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, "user")
		} else {
			h.abortInternal(c, err)
		}
		return
	}

	if !authz.CanViewUser(currentUser(c), user) {
		abortForbidden(c, "You cannot view another customer's users")
		return
	}

	key := fmt.Sprintf("user_%d", id)

	body, err := h.cache.GetOrCompute(key, []string{tagUsers}, func() ([]byte, error) {
		return json.Marshal(newUserShowView(user))
	})
	if err != nil {
		h.abortInternal(c, err)
		return
	}

	respondSerialized(c, http.StatusOK, body)
}

// CreateUser handles the POST /api/users request. The new user is always
// created under the caller's own customer.
func (h *Handler) CreateUser(c *gin.Context) {
	actor := currentUser(c)
	if !authz.CanCreateUser(actor) {
		abortForbidden(c, "You cannot create users")
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, bindingErrors(err))
		return
	}

	taken, err := h.users.EmailTaken(c.Request.Context(), req.Email, 0)
	if err != nil {
		h.abortInternal(c, err)
		return
	}
	if taken {
		abortValidation(c, map[string][]string{"email": {emailTakenMessage(req.Email)}})
		return
	}

	dto := &service.UserDTO{
		Email:      req.Email,
		Fullname:   req.Fullname,
		Password:   req.Password,
		CustomerID: actor.CustomerID,
	}

	user, err := h.users.FillInUserFromDTO(dto, nil)
	if err != nil {
		h.abortInternal(c, err)
		return
	}
	user.Customer = actor.Customer

	if err := h.users.Create(c.Request.Context(), user); err != nil {
		h.abortInternal(c, err)
		return
	}

	h.cache.Invalidate(tagUsers)

	c.Header("Location", fmt.Sprintf("/api/users/%d", user.ID))
	c.JSON(http.StatusCreated, newUserShowView(user))
}

// UpdateUser handles the PUT /api/users/{id} request.
func (h *Handler) UpdateUser(c *gin.Context) {
	actor := currentUser(c)

	id, ok := idParam(c)
	if !ok {
		abortError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, "user")
		} else {
			h.abortInternal(c, err)
		}
		return
	}

	if !authz.CanUpdateUser(actor, user) {
		abortForbidden(c, "You cannot update another customer's users")
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortValidation(c, bindingErrors(err))
		return
	}

	if req.Email != "" {
		taken, err := h.users.EmailTaken(c.Request.Context(), req.Email, user.ID)
		if err != nil {
			h.abortInternal(c, err)
			return
		}
		if taken {
			abortValidation(c, map[string][]string{"email": {emailTakenMessage(req.Email)}})
			return
		}
	}

	dto := &service.UserDTO{
		ID:         user.ID,
		Email:      req.Email,
		Fullname:   req.Fullname,
		Password:   req.Password,
		CustomerID: actor.CustomerID,
	}

	user, err = h.users.FillInUserFromDTO(dto, user)
	if err != nil {
		h.abortInternal(c, err)
		return
	}

	if err := h.users.Save(c.Request.Context(), user); err != nil {
		h.abortInternal(c, err)
		return
	}

	h.cache.Invalidate(tagUsers)

	c.JSON(http.StatusOK, newUserShowView(user))
}

// DeleteUser handles the DELETE /api/users/{id} request.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		abortError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			abortNotFound(c, "user")
		} else {
			h.abortInternal(c, err)
		}
		return
	}

	if !authz.CanDeleteUser(currentUser(c), user) {
		abortForbidden(c, "You cannot delete another customer's users")
		return
	}

	if err := h.users.Delete(c.Request.Context(), user); err != nil {
		h.abortInternal(c, err)
		return
	}

	h.cache.Invalidate(tagUsers)

	c.Status(http.StatusNoContent)
}
