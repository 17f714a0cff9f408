package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-server/internal/model"
)

// callerKey is the gin context key holding the resolved caller.
const callerKey = "caller"

// SetCaller stores the resolved caller on the request context.
func SetCaller(c *gin.Context, user *model.User) {
	c.Set(callerKey, user)
}

// CallerFrom returns the caller resolved for this request, or nil for an
// anonymous request.
func CallerFrom(c *gin.Context) *model.User {
	value, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	user, ok := value.(*model.User)
	if !ok {
		return nil
	}
	return user
}
