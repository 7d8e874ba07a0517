package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/ranchgame/internal/model"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{model.ErrPlayerNotFound, http.StatusNotFound},
		{model.ErrTradeNotFound, http.StatusNotFound},
		{model.ErrPlayerExists, http.StatusConflict},
		{model.ErrSelfTrade, http.StatusBadRequest},
		{model.ErrInvalidCount, http.StatusBadRequest},
		{model.ErrInvalidIndex, http.StatusBadRequest},
		{model.ErrKeyImmutable, http.StatusConflict},
		{model.ErrUsernameImmutable, http.StatusConflict},
		{model.ErrUnknownRanch, http.StatusInternalServerError},
		{fmt.Errorf("generate player 3: %w", model.ErrInvalidIndex), http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
		{NewUnauthorizedError(), http.StatusUnauthorized},
		{NewForbiddenError("nope"), http.StatusForbidden},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), "error %v", tt.err)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, model.ErrSelfTrade)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, CodeSelfTrade, resp.Error.Code)
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("redis: connection refused on 10.0.0.3"))

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, CodeInternalError, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "redis")
}
