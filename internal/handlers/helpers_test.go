package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dating-admin-console/internal/audit"
	"dating-admin-console/internal/client"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testAPI points a fetch client at a fake backend.
func testAPI(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return client.New(server.URL, 2*time.Second, log)
}

func performRequest(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// recorderStub captures audit entries for assertions.
type recorderStub struct {
	entries []audit.Entry
}

func (r *recorderStub) Record(_ context.Context, entry audit.Entry) {
	r.entries = append(r.entries, entry)
}
