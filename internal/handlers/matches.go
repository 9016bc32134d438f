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

type MatchHandler struct {
	api     *client.Client
	matches *state.Latest[matchSnapshot]
}

type matchSnapshot struct {
	matches []models.Match
	users   *derive.UserIndex
}

// MatchEntry keeps the match's participant order as delivered; match pairs
// are not canonicalized.
type MatchEntry struct {
	models.Match
	User1Name  string `json:"user1Name"`
	User2Name  string `json:"user2Name"`
	User1Photo string `json:"user1Photo"`
	User2Photo string `json:"user2Photo"`
}

type MatchListResponse struct {
	Matches []MatchEntry `json:"matches"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	Stale   bool         `json:"stale,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func NewMatchHandler(api *client.Client) *MatchHandler {
	return &MatchHandler{
		api:     api,
		matches: &state.Latest[matchSnapshot]{},
	}
}

func (h *MatchHandler) GetMatches(c *gin.Context) {
	page, limit := pageParams(c)

	var matches []models.Match
	var users []models.User

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		matches, err = h.api.ListMatches(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = h.api.ListUsers(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		stale, ok := h.matches.Fail(err)
		if !ok {
			c.JSON(apiStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, matchListResponse(stale, page, limit, err))
		return
	}

	snapshot := matchSnapshot{matches: matches, users: derive.NewUserIndex(users)}
	h.matches.Store(snapshot)

	c.JSON(http.StatusOK, matchListResponse(snapshot, page, limit, nil))
}

func matchListResponse(snapshot matchSnapshot, page, limit int, staleErr error) MatchListResponse {
	entries := make([]MatchEntry, 0, len(snapshot.matches))
	for _, match := range snapshot.matches {
		entries = append(entries, MatchEntry{
			Match:      match,
			User1Name:  snapshot.users.DisplayName(match.User1ID),
			User2Name:  snapshot.users.DisplayName(match.User2ID),
			User1Photo: snapshot.users.PhotoURL(match.User1ID),
			User2Photo: snapshot.users.PhotoURL(match.User2ID),
		})
	}

	resp := MatchListResponse{
		Matches: derive.Page(entries, page, limit),
		Total:   len(entries),
		Page:    page,
		Limit:   limit,
	}
	if staleErr != nil {
		resp.Stale = true
		resp.Error = staleErr.Error()
	}
	return resp
}
