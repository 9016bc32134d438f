package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dating-admin-console/internal/audit"
	"dating-admin-console/internal/client"
	"dating-admin-console/internal/derive"
	"dating-admin-console/internal/models"
	"dating-admin-console/internal/state"
)

type UserHandler struct {
	api   *client.Client
	audit audit.Recorder
	users *state.Latest[[]models.User]
}

type BlockUserRequest struct {
	Blocked *bool `json:"blocked" binding:"required"`
}

type UserListResponse struct {
	Users []models.User `json:"users"`
	Total int           `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Stale bool          `json:"stale,omitempty"`
	Error string        `json:"error,omitempty"`
}

func NewUserHandler(api *client.Client, recorder audit.Recorder) *UserHandler {
	return &UserHandler{
		api:   api,
		audit: recorder,
		users: &state.Latest[[]models.User]{},
	}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	h.listUsers(c, false)
}

// GetBlockedUsers serves the blocked-only view derived from the same user
// snapshot.
func (h *UserHandler) GetBlockedUsers(c *gin.Context) {
	h.listUsers(c, true)
}

func (h *UserHandler) listUsers(c *gin.Context, blockedOnly bool) {
	page, limit := pageParams(c)

	users, err := h.api.ListUsers(c.Request.Context())
	if err != nil {
		// Keep showing the previous snapshot rather than blanking the page.
		stale, ok := h.users.Fail(err)
		if !ok {
			c.JSON(apiStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, userListResponse(stale, blockedOnly, page, limit, err))
		return
	}

	h.users.Store(users)
	c.JSON(http.StatusOK, userListResponse(users, blockedOnly, page, limit, nil))
}

func userListResponse(users []models.User, blockedOnly bool, page, limit int, staleErr error) UserListResponse {
	if blockedOnly {
		blocked := make([]models.User, 0)
		for _, user := range users {
			if user.Blocked {
				blocked = append(blocked, user)
			}
		}
		users = blocked
	}

	resp := UserListResponse{
		Users: derive.Page(users, page, limit),
		Total: len(users),
		Page:  page,
		Limit: limit,
	}
	if staleErr != nil {
		resp.Stale = true
		resp.Error = staleErr.Error()
	}
	return resp
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.api.GetUser(c.Request.Context(), id)
	if err != nil {
		c.JSON(apiStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.api.CreateUser(c.Request.Context(), fields)
	if err != nil {
		c.JSON(apiStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		Operator:   operator(c),
		Action:     "create_user",
		TargetType: "user",
		TargetID:   user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.api.UpdateUser(c.Request.Context(), id, fields)
	if err != nil {
		c.JSON(apiStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		Operator:   operator(c),
		Action:     "update_user",
		TargetType: "user",
		TargetID:   id,
	})

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) BlockUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.api.SetBlocked(c.Request.Context(), id, *req.Blocked)
	if err != nil {
		c.JSON(apiStatus(err), gin.H{"error": err.Error()})
		return
	}

	action := "block"
	if !*req.Blocked {
		action = "unblock"
	}
	h.audit.Record(c.Request.Context(), audit.Entry{
		Operator:   operator(c),
		Action:     action,
		TargetType: "user",
		TargetID:   id,
	})

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.api.DeleteUser(c.Request.Context(), id); err != nil {
		c.JSON(apiStatus(err), gin.H{"error": err.Error()})
		return
	}

	h.audit.Record(c.Request.Context(), audit.Entry{
		Operator:   operator(c),
		Action:     "delete_user",
		TargetType: "user",
		TargetID:   id,
	})

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("User %d deleted", id)})
}

func parseID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	return uint(id), err
}
