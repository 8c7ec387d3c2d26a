package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EthanNaitwe/SchoolReportMaster/pkg/response"
)

// BodyLimit 全局请求体大小限制中间件
// maxBytes 之上留少量余量，给 multipart 边界与表单字段让位；
// 精确的文件大小校验在上传 Service 内完成
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "请求体过大")
				return
			}
		}
	}
}

