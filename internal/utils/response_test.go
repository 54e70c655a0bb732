package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"hyperhive-backend/internal/errs"
)

func TestFromErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not found", errs.NotFoundf("learner %s", "x"), http.StatusNotFound},
		{"conflict", errs.Conflictf("email %s taken", "a@b.c"), http.StatusConflict},
		{"validation", errs.Validationf("bad input"), http.StatusBadRequest},
		{"wrapped not found", errs.NotFoundf("outer: %v", errs.ErrNotFound), http.StatusNotFound},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, "request failed", tc.err)

			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}

			var body APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Success {
				t.Error("Success = true on error response")
			}
			if body.Message != "request failed" {
				t.Errorf("Message = %q", body.Message)
			}
			if body.Error == "" {
				t.Error("Error field empty")
			}
		})
	}
}

func TestSuccessResponseEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SuccessResponse(c, "ok", map[string]string{"id": "1"})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	var body APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !body.Success || body.Message != "ok" || body.Data == nil {
		t.Errorf("unexpected envelope %+v", body)
	}
}
