package handlers

import (
	"net/http"

	"food-delivery-app/apperror"
	"food-delivery-app/logger"

	"github.com/gin-gonic/gin"
)

// ok writes the success envelope.
func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// fail writes the error envelope with the status matching err's kind.
func fail(c *gin.Context, err error) {
	failWith(c, apperror.StatusOf(err), err)
}

func failWith(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError || apperror.KindOf(err) == apperror.KindInternal {
		logger.Failure("http", c.FullPath(), err).WithField("status", status).Error("request failed")
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

// bindJSON decodes the body into req, writing a 400 on failure.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fail(c, apperror.Validation(err.Error()))
		return false
	}
	return true
}
