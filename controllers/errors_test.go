package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Edmundtutu/foody-sub002/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ve := services.ValidationErrors{{Field: "groups", Kind: services.KindGroupNotInCombo, Message: "Group 9 does not belong to this combo."}}

	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", fmt.Errorf("wrapped: %w", ve), http.StatusUnprocessableEntity, "validation failed"},
		{"unauthenticated", services.ErrUnauthenticated, http.StatusUnauthorized, "login required"},
		{"forbidden", services.Deny("nope").Err(), http.StatusForbidden, "forbidden: nope"},
		{"not found", fmt.Errorf("load: %w", gorm.ErrRecordNotFound), http.StatusNotFound, "not found"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tc.err)

			assert.Equal(t, tc.code, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["ok"])
			assert.Equal(t, tc.msg, body["error"])
		})
	}
}

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for raw, want := range map[string]bool{"12": true, "0": false, "-1": false, "x": false} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		_, ok := paramID(c, "id")
		assert.Equal(t, want, ok, raw)
		if !want {
			assert.Equal(t, http.StatusBadRequest, w.Code, raw)
		}
	}
}
