package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finance-tracker/src/auth"
	"finance-tracker/src/db/sqlite"
	"finance-tracker/src/logger"
	"finance-tracker/src/middleware"

	"github.com/rs/zerolog/log"
)

func TestDeleteUserLogsEmail(t *testing.T) {
	var buf bytes.Buffer
	logger.SetupWriter(&buf, "info", false)

	store, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	credentials := auth.NewCredentials(store, nil)
	user, err := credentials.Register(context.Background(), "A", "a@x.com", "p")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	ctx := log.Logger.WithContext(context.Background())
	ctx = middleware.WithUser(ctx, user.ID, user.Email)
	req := httptest.NewRequest(http.MethodDelete, "/api/user", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	DeleteUser(credentials).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(buf.String(), `"email":"a@x.com"`) || !strings.Contains(buf.String(), "user deleted") {
		t.Errorf("deletion log missing email: %s", buf.String())
	}
}
