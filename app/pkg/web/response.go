package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

/*
Response envelope. Business outcomes ride in Data; the envelope code
stays aligned with the http status.
*/

// Response .
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success .
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		0,
		"ok",
		data,
	})
}

// ParamsError .
func ParamsError(c *gin.Context, msg string) {
	c.JSON(http.StatusUnprocessableEntity, Response{
		0,
		msg,
		"",
	})
}

// InternalError .
func InternalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Response{
		0,
		msg,
		"",
	})
}

// NotFoundResource .
func NotFoundResource(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{
		0,
		msg,
		"",
	})
}

// Conflict .
func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, Response{
		0,
		msg,
		"",
	})
}
