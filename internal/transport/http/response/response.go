package response

import "github.com/gin-gonic/gin"

// ErrorBody is the envelope every failed request answers with. Code repeats the
// HTTP status so clients that only read the body still see it.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Code: status, Message: message})
}
