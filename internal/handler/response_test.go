package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/backend/internal/repository"
	"github.com/projecthub/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantOK bool
		wantID uint
	}{
		{name: "valid", raw: "12", wantOK: true, wantID: 12},
		{name: "zero", raw: "0"},
		{name: "negative", raw: "-1"},
		{name: "letters", raw: "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext("/")
			c.Params = gin.Params{{Key: "id", Value: tt.raw}}
			id, ok := parseID(c, "id")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if !tt.wantOK {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestQueryUint(t *testing.T) {
	c, _ := newContext("/items")
	v, ok := queryUint(c, "project_id")
	assert.True(t, ok)
	assert.Nil(t, v)

	c, _ = newContext("/items?project_id=7")
	v, ok = queryUint(c, "project_id")
	require.True(t, ok)
	require.NotNil(t, v)
	assert.EqualValues(t, 7, *v)

	c, w := newContext("/items?project_id=x")
	_, ok = queryUint(c, "project_id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQueryBool(t *testing.T) {
	c, _ := newContext("/items")
	assert.Nil(t, queryBool(c, "is_fixed"))

	for raw, want := range map[string]bool{"true": true, "TRUE": true, "false": false, "1": false, "yes": false} {
		c, _ := newContext("/items?is_fixed=" + raw)
		got := queryBool(c, "is_fixed")
		require.NotNil(t, got, raw)
		assert.Equal(t, want, *got, raw)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{err: fmt.Errorf("%w: fax", service.ErrInvalidMaterialType), code: http.StatusBadRequest},
		{err: fmt.Errorf("%w: project 3", service.ErrInvalidReference), code: http.StatusBadRequest},
		{err: fmt.Errorf("%w: link", service.ErrEmptyField), code: http.StatusBadRequest},
		{err: repository.ErrNotFound, code: http.StatusNotFound},
		{err: errors.New("disk full"), code: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		c, w := newContext("/")
		writeError(c, tt.err)
		assert.Equal(t, tt.code, w.Code, tt.err.Error())

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
	}
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "********", maskKey(""))
	assert.Equal(t, "********", maskKey("short"))
	assert.Equal(t, "abcd****wxyz", maskKey("abcdefghijklmnopqrstuvwxyz"))
}
