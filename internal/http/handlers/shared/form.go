package shared

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxMultipartMemory = 8 << 20

// FormValues 读取 urlencoded 或 multipart 表单，返回扁平键值。
func FormValues(c *gin.Context) (url.Values, error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/") {
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
			return nil, err
		}
	} else if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return c.Request.PostForm, nil
}
