package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SharerHeader carries the caller's user id on every item, booking and request call.
const SharerHeader = "X-Sharer-User-Id"

// SharerRequired is a Gin middleware that reads the caller id from SharerHeader.
// It only checks the format; services decide whether the user exists.
func SharerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader(SharerHeader))
		if header == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + SharerHeader + " header",
			})
			return
		}

		id, err := uuid.Parse(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + SharerHeader + " header",
			})
			return
		}

		// Store user info into Gin context for later handlers.
		c.Set("userID", id.String())

		c.Next()
	}
}
