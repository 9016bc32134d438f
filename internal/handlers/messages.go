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

type MessageHandler struct {
	api           *client.Client
	conversations *state.Latest[conversationSnapshot]
}

// conversationSnapshot pairs grouped conversations with the user index they
// were resolved against, so a stale fallback renders consistent names.
type conversationSnapshot struct {
	conversations []derive.Conversation
	users         *derive.UserIndex
}

type ConversationEntry struct {
	derive.Conversation
	User1Name  string `json:"user1Name"`
	User2Name  string `json:"user2Name"`
	User1Photo string `json:"user1Photo"`
	User2Photo string `json:"user2Photo"`
}

type ConversationListResponse struct {
	Conversations []ConversationEntry `json:"conversations"`
	Total         int                 `json:"total"`
	Page          int                 `json:"page"`
	Limit         int                 `json:"limit"`
	Stale         bool                `json:"stale,omitempty"`
	Error         string              `json:"error,omitempty"`
}

type ThreadMessage struct {
	models.Message
	SenderName  string `json:"senderName"`
	SenderPhoto string `json:"senderPhoto"`
}

func NewMessageHandler(api *client.Client) *MessageHandler {
	return &MessageHandler{
		api:           api,
		conversations: &state.Latest[conversationSnapshot]{},
	}
}

// GetConversations fetches the message and user snapshots concurrently,
// groups messages into threads and serves the requested page. If either
// fetch fails the join fails as a whole and the previous snapshot is served
// stale instead.
func (h *MessageHandler) GetConversations(c *gin.Context) {
	page, limit := pageParams(c)
	query := c.Query("search")

	var messages []models.Message
	var users []models.User

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		messages, err = h.api.ListMessages(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = h.api.ListUsers(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		stale, ok := h.conversations.Fail(err)
		if !ok {
			c.JSON(apiStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, conversationListResponse(stale, query, page, limit, err))
		return
	}

	snapshot := conversationSnapshot{
		conversations: derive.Group(messages),
		users:         derive.NewUserIndex(users),
	}
	h.conversations.Store(snapshot)

	c.JSON(http.StatusOK, conversationListResponse(snapshot, query, page, limit, nil))
}

func conversationListResponse(snapshot conversationSnapshot, query string, page, limit int, staleErr error) ConversationListResponse {
	filtered := derive.Search(snapshot.conversations, query, snapshot.users.DisplayName)

	entries := make([]ConversationEntry, 0, len(filtered))
	for _, conv := range filtered {
		entries = append(entries, ConversationEntry{
			Conversation: conv,
			User1Name:    snapshot.users.DisplayName(conv.User1ID),
			User2Name:    snapshot.users.DisplayName(conv.User2ID),
			User1Photo:   snapshot.users.PhotoURL(conv.User1ID),
			User2Photo:   snapshot.users.PhotoURL(conv.User2ID),
		})
	}

	resp := ConversationListResponse{
		Conversations: derive.Page(entries, page, limit),
		Total:         len(entries),
		Page:          page,
		Limit:         limit,
	}
	if staleErr != nil {
		resp.Stale = true
		resp.Error = staleErr.Error()
	}
	return resp
}

// GetThread serves the ordered message sequence for one conversation. The
// backend already filters to the pair; the local filter+sort is applied on
// top so both forms agree.
func (h *MessageHandler) GetThread(c *gin.Context) {
	user1ID, err := parseID(c, "user1_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	user2ID, err := parseID(c, "user2_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var messages []models.Message
	var users []models.User

	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		messages, err = h.api.GetThread(ctx, user1ID, user2ID)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = h.api.ListUsers(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		c.JSON(apiStatus(err), gin.H{"error": err.Error()})
		return
	}

	idx := derive.NewUserIndex(users)
	thread := derive.Thread(messages, user1ID, user2ID)

	resolved := make([]ThreadMessage, 0, len(thread))
	for _, msg := range thread {
		resolved = append(resolved, ThreadMessage{
			Message:     msg,
			SenderName:  idx.DisplayName(msg.SenderID),
			SenderPhoto: idx.PhotoURL(msg.SenderID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"messages":  resolved,
		"user1Name": idx.DisplayName(user1ID),
		"user2Name": idx.DisplayName(user2ID),
	})
}
