package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"dating-admin-console/internal/client"
	"dating-admin-console/internal/derive"
	"dating-admin-console/internal/models"
	"dating-admin-console/internal/state"
)

type SwipeHandler struct {
	api    *client.Client
	swipes *state.Latest[swipeSnapshot]
}

type swipeSnapshot struct {
	swipes []models.Swipe
	users  *derive.UserIndex
}

type SwipeEntry struct {
	models.Swipe
	SwiperName string `json:"swiperName"`
	TargetName string `json:"targetName"`
}

type SwipeListResponse struct {
	Swipes []SwipeEntry `json:"swipes"`
	Total  int          `json:"total"`
	Page   int          `json:"page"`
	Limit  int          `json:"limit"`
	Stale  bool         `json:"stale,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func NewSwipeHandler(api *client.Client) *SwipeHandler {
	return &SwipeHandler{
		api:    api,
		swipes: &state.Latest[swipeSnapshot]{},
	}
}

func (h *SwipeHandler) GetSwipes(c *gin.Context) {
	page, limit := pageParams(c)

	var swipes []models.Swipe
	var users []models.User

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		swipes, err = h.api.ListSwipes(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = h.api.ListUsers(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		stale, ok := h.swipes.Fail(err)
		if !ok {
			c.JSON(apiStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, swipeListResponse(stale, page, limit, err))
		return
	}

	snapshot := swipeSnapshot{swipes: swipes, users: derive.NewUserIndex(users)}
	h.swipes.Store(snapshot)

	c.JSON(http.StatusOK, swipeListResponse(snapshot, page, limit, nil))
}

func swipeListResponse(snapshot swipeSnapshot, page, limit int, staleErr error) SwipeListResponse {
	entries := make([]SwipeEntry, 0, len(snapshot.swipes))
	for _, swipe := range snapshot.swipes {
		entries = append(entries, SwipeEntry{
			Swipe:      swipe,
			SwiperName: snapshot.users.DisplayName(swipe.SwiperID),
			TargetName: snapshot.users.DisplayName(swipe.TargetID),
		})
	}

	resp := SwipeListResponse{
		Swipes: derive.Page(entries, page, limit),
		Total:  len(entries),
		Page:   page,
		Limit:  limit,
	}
	if staleErr != nil {
		resp.Stale = true
		resp.Error = staleErr.Error()
	}
	return resp
}
