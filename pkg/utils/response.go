package utils

import (
	"github.com/gin-gonic/gin"
)

// Standard response shape so the frontend always parses the same thing
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func APIResponse(c *gin.Context, code int, success bool, message string, data interface{}) {
	c.JSON(code, Response{
		Success: success,
		Message: message,
		Data:    data,
	})
}

// PaginatedResponse adds count/total/pagination for list endpoints.
// pages is computed from total and limit.
func PaginatedResponse(c *gin.Context, message string, data interface{}, count int, total int64, page, limit int) {
	pages := 1
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
		if pages < 1 {
			pages = 1
		}
	}
	c.JSON(200, gin.H{
		"success": true,
		"message": message,
		"count":   count,
		"total":   total,
		"pagination": gin.H{
			"page":  page,
			"pages": pages,
		},
		"data": data,
	})
}
