package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRouter(h *UserHandler) *gin.Engine {
	router := gin.New()
	router.GET("/users", h.GetUsers)
	router.GET("/users/blocked", h.GetBlockedUsers)
	router.POST("/users/:id/block", h.BlockUser)
	router.DELETE("/users/:id", h.DeleteUser)
	return router
}

func userSnapshotJSON(total int) string {
	entries := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		blocked := i%3 == 0
		entries = append(entries, fmt.Sprintf(`{"id":%d,"name":"User-%d","blocked":%t}`, i, i, blocked))
	}
	return "[" + strings.Join(entries, ",") + "]"
}

func TestGetUsers_Paged(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(userSnapshotJSON(30)))
	}))
	router := userRouter(NewUserHandler(api, &recorderStub{}))

	w := performRequest(router, http.MethodGet, "/users?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp UserListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	require.Len(t, resp.Users, 10)
	assert.Equal(t, uint(11), resp.Users[0].ID)
	assert.Equal(t, uint(20), resp.Users[9].ID)
}

func TestGetUsers_UnsupportedLimitFallsBack(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(userSnapshotJSON(30)))
	}))
	router := userRouter(NewUserHandler(api, &recorderStub{}))

	w := performRequest(router, http.MethodGet, "/users?limit=17", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp UserListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Limit)
	assert.Len(t, resp.Users, 10)
}

func TestGetUsers_PageBeyondEndIsEmpty(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(userSnapshotJSON(5)))
	}))
	router := userRouter(NewUserHandler(api, &recorderStub{}))

	w := performRequest(router, http.MethodGet, "/users?page=4&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp UserListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.Total)
	assert.Empty(t, resp.Users)
}

func TestGetBlockedUsers_FiltersBeforePaging(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(userSnapshotJSON(30)))
	}))
	router := userRouter(NewUserHandler(api, &recorderStub{}))

	w := performRequest(router, http.MethodGet, "/users/blocked", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp UserListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10, resp.Total)
	for _, user := range resp.Users {
		assert.True(t, user.Blocked)
	}
}

func TestGetUsers_ServesStaleAfterFailure(t *testing.T) {
	var failing atomic.Bool
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"backend down"}`))
			return
		}
		w.Write([]byte(userSnapshotJSON(3)))
	}))
	router := userRouter(NewUserHandler(api, &recorderStub{}))

	first := performRequest(router, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, first.Code)

	failing.Store(true)
	second := performRequest(router, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, second.Code)

	var resp UserListResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.True(t, resp.Stale)
	assert.Equal(t, "backend down", resp.Error)
	assert.Equal(t, 3, resp.Total)
}

func TestGetUsers_ErrorWithoutPriorSnapshot(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"backend down"}`))
	}))
	router := userRouter(NewUserHandler(api, &recorderStub{}))

	w := performRequest(router, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "backend down")
}

func TestBlockUser_RecordsAudit(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/users/7/block", r.URL.Path)
		w.Write([]byte(`{"id":7,"name":"Gina","blocked":true}`))
	}))
	recorder := &recorderStub{}
	router := userRouter(NewUserHandler(api, recorder))

	w := performRequest(router, http.MethodPost, "/users/7/block", []byte(`{"blocked":true}`))
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "block", recorder.entries[0].Action)
	assert.Equal(t, uint(7), recorder.entries[0].TargetID)
}

func TestBlockUser_UnblockAction(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":7,"name":"Gina","blocked":false}`))
	}))
	recorder := &recorderStub{}
	router := userRouter(NewUserHandler(api, recorder))

	w := performRequest(router, http.MethodPost, "/users/7/block", []byte(`{"blocked":false}`))
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "unblock", recorder.entries[0].Action)
}

func TestBlockUser_MissingFieldRejected(t *testing.T) {
	var calls atomic.Int64
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{}`))
	}))
	router := userRouter(NewUserHandler(api, &recorderStub{}))

	w := performRequest(router, http.MethodPost, "/users/7/block", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, int64(0), calls.Load())
}

func TestDeleteUser_FailureSkipsAudit(t *testing.T) {
	api := testAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"User not found"}`))
	}))
	recorder := &recorderStub{}
	router := userRouter(NewUserHandler(api, recorder))

	w := performRequest(router, http.MethodDelete, "/users/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, recorder.entries)
}
