package llm

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var rateLimitKeywords = []string{
	"429",
	"rate limit",
	"quota exceeded",
	"too many requests",
	"rate-limited",
	"request rate exceeded",
	"请求次数超过限制",
	"超过限制",
}

var retryPatterns = []struct {
	re   *regexp.Regexp
	unit time.Duration
}{
	{regexp.MustCompile(`(?i)(?:try again in|retry after) (\d+)s`), time.Second},
	{regexp.MustCompile(`(?i)(?:try again in|retry after) (\d+)m`), time.Minute},
	{regexp.MustCompile(`(?i)(?:try again in|retry after) (\d+)h`), time.Hour},
}

var resetAtPattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:Z|[+-]\d{2}:\d{2})?)`)

// IsRateLimitError 根据错误文本判断上游是否限流
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, keyword := range rateLimitKeywords {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}

// RetryAt 解析限流错误中的恢复时间，无法解析时返回零值
func RetryAt(err error, now time.Time) time.Time {
	if err == nil {
		return time.Time{}
	}
	msg := err.Error()
	for _, p := range retryPatterns {
		m := p.re.FindStringSubmatch(msg)
		if len(m) < 2 {
			continue
		}
		n, convErr := strconv.Atoi(m[1])
		if convErr != nil {
			continue
		}
		return now.Add(time.Duration(n) * p.unit)
	}
	if m := resetAtPattern.FindStringSubmatch(msg); len(m) >= 2 {
		layout := time.RFC3339
		if !strings.ContainsAny(m[1][10:], "Z+-") {
			layout = "2006-01-02T15:04:05"
		}
		if t, parseErr := time.Parse(layout, m[1]); parseErr == nil {
			return t
		}
	}
	return time.Time{}
}
