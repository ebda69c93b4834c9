package observability

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"strings"
	"time"

	"go-gamepedia/internal/mq/kafka"

	"github.com/gin-gonic/gin"
)

var skipOpLogPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
	"/metrics": {},
}

var sensitiveKeys = []string{"password", "passwd", "pwd", "new_password", "old_password", "token", "authorization"}

// OperationLog 管理端操作审计：请求结束后异步投递到 Kafka，消费端落 user_action 表
// sender 为 nil 时列为 no-op，便于无 Kafka 环境下启动
func OperationLog(sender *kafka.AsyncSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sender == nil {
			c.Next()
			return
		}
		rawPath := c.Request.URL.Path
		if _, ok := skipOpLogPaths[rawPath]; ok {
			c.Next()
			return
		}
		start := time.Now()
		var bodyBytes []byte
		if c.Request.Body != nil {
			b, _ := io.ReadAll(io.LimitReader(c.Request.Body, 4096))
			bodyBytes = b
			c.Request.Body = io.NopCloser(bytes.NewBuffer(b))
		}
		bw := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Next()
		queryStr := c.Request.URL.RawQuery
		if len(queryStr) > 1024 {
			queryStr = queryStr[:1024]
		}
		path := c.FullPath()
		if path == "" {
			path = rawPath
		}
		if path != "" && !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		var qDecoded string
		if queryStr != "" {
			if vals, err := url.ParseQuery(queryStr); err == nil {
				pairs := make([]string, 0, len(vals))
				for k, v := range vals {
					if len(v) > 0 {
						val := v[0]
						if len(val) > 100 {
							val = val[:100]
						}
						pairs = append(pairs, k+"="+val)
					}
				}
				qDecoded = strings.Join(pairs, "&")
			}
			if len(qDecoded) > 512 {
				qDecoded = qDecoded[:512]
			}
		}
		e := map[string]interface{}{
			"action_name": deriveActionName(path, c.Request.Method),
			"path":        path,
			"method":      c.Request.Method,
			"status":      c.Writer.Status(),
			"latency_ms":  time.Since(start).Milliseconds(),
			"ip":          c.ClientIP(),
			"user_id":     c.GetInt64("user_id"),
			"nickname":    c.GetString("nickname"),
			"time":        time.Now().Format(time.RFC3339),
			"body":        sanitizeJSON(bodyBytes),
			"query":       qDecoded,
		}
		if len(c.Errors) > 0 {
			errs := make([]string, 0, len(c.Errors))
			for _, er := range c.Errors {
				errs = append(errs, er.Error())
			}
			e["errors"] = errs
		}
		b, _ := json.Marshal(e)
		var headers map[string]string
		if traceID, ok := c.Get("trace_id"); ok {
			headers = map[string]string{"trace_id": traceID.(string)}
		}
		sender.Enqueue(kafka.AsyncMessage{Ctx: c.Request.Context(), Value: b, Headers: headers})
	}
}

type bodyWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	if w.buf.Len() < 4096 {
		remain := 4096 - w.buf.Len()
		if len(b) > remain {
			w.buf.Write(b[:remain])
		} else {
			w.buf.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

func sanitizeJSON(src []byte) string {
	if len(src) == 0 {
		return ""
	}
	if len(src) > 4096 {
		src = src[:4096]
	}
	var m interface{}
	if json.Unmarshal(src, &m) != nil {
		return string(src)
	}
	sanitizeValue(&m)
	b, err := json.Marshal(m)
	if err != nil {
		return string(src)
	}
	return string(b)
}

func sanitizeValue(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, vv := range val {
			lower := strings.ToLower(k)
			for _, s := range sensitiveKeys {
				if lower == s {
					val[k] = "***"
					goto NEXT
				}
			}
			sanitizeValue(&vv)
			val[k] = vv
		NEXT:
		}
	case []interface{}:
		for i, elem := range val {
			sanitizeValue(&elem)
			val[i] = elem
		}
	}
}

func deriveActionName(path, method string) string {
	if path == "" {
		return method
	}
	p := strings.Trim(path, "/")
	if p == "" {
		return method
	}
	p = strings.ReplaceAll(p, "/", ":")
	p = strings.ReplaceAll(p, ":", "_")
	return strings.ToLower(method + "_" + p)
}
