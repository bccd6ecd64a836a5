// Package response writes the API's JSON envelope: {"success": bool} plus
// either a data payload or an error object with a stable machine code.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{"success": true, "data": data})
}

// Error writes a failure envelope. code is a stable identifier clients
// branch on; message is human-readable and may change.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

// ErrorWithDetails is Error with an extra payload, used for per-field
// validation results.
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message, "details": details},
	})
}
