package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rajivijay0509/nutrition-tracker-web/models"
	"github.com/rajivijay0509/nutrition-tracker-web/repositories"
	"github.com/rajivijay0509/nutrition-tracker-web/services"
	"github.com/stretchr/testify/assert"
)

func TestRespondErrorStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{&services.ValidationError{Msg: "Please fill in all fields"}, http.StatusBadRequest, "Please fill in all fields"},
		{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
		{services.ErrEmailNotConfirmed, http.StatusUnauthorized, "Please check your email to confirm your account."},
		{fmt.Errorf("goal g1: %w", repositories.ErrNotFound), http.StatusNotFound, "Not found"},
		{services.ErrPhotosDisabled, http.StatusNotImplemented, services.ErrPhotosDisabled.Error()},
		{services.ErrBMIUnavailable, http.StatusUnprocessableEntity, services.ErrBMIUnavailable.Error()},
		{&services.ProviderError{Status: http.StatusConflict, Msg: "User already registered"}, http.StatusConflict, "User already registered"},
		{&services.ProviderError{Status: 0, Msg: "bad gateway"}, http.StatusBadGateway, "bad gateway"},
		{errors.New("boom"), http.StatusInternalServerError, "Something went wrong, please try again"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.msg, body["error"])
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Ana Silva", displayName(models.AuthUser{
		Email:    "ana@example.com",
		Metadata: map[string]any{"first_name": "Ana", "last_name": "Silva"},
	}))
	assert.Equal(t, "ana", displayName(models.AuthUser{Email: "ana@example.com"}))
	assert.Equal(t, "Anonymous", displayName(models.AuthUser{}))
}
