package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tcontrol/internal/repositories"
)

// RequireMembershipRole gates a route on the caller holding the given
// membership role in at least one organisation. Per-org scoping happens in
// the handlers; this guard covers system-level surfaces (admin trigger,
// audit listing).
func RequireMembershipRole(memberships repositories.MembershipRepository, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no user in context"})
			return
		}
		userID, _ := v.(int64)

		ok, err := memberships.HasRole(c.Request.Context(), userID, role)
		if err != nil {
			log.Printf("[authz][err] role lookup failed: user=%d role=%q: %v", userID, role, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "authorization check failed"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "role '" + role + "' required"})
			return
		}
		c.Next()
	}
}
