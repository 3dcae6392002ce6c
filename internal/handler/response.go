package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/projecthub/backend/internal/repository"
	"github.com/projecthub/backend/internal/service"
	"k8s.io/klog/v2"
)

// parseID 解析路径参数，非正整数时直接写 400
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// queryUint 未提供参数时返回 nil，格式错误时写 400
func queryUint(c *gin.Context, name string) (*uint, bool) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, true
	}
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return nil, false
	}
	v := uint(id)
	return &v, true
}

// queryBool 只有 "true"（忽略大小写）视为 true
func queryBool(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	v := strings.EqualFold(strings.TrimSpace(raw), "true")
	return &v
}

// writeError 将服务层错误映射为 HTTP 状态码
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidMaterialType),
		errors.Is(err, service.ErrInvalidReference),
		errors.Is(err, service.ErrEmptyField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		klog.Errorf("request failed: method=%s, path=%s, error=%v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
