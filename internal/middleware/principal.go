package middleware

import "github.com/gin-gonic/gin"

const principalKey = contextKey("principal")

// AnonymousPrincipal is recorded when the caller supplies no principal.
const AnonymousPrincipal = "anonymous"

// PrincipalHeader names the header the request layer reads the acting
// principal from. Authentication itself is out of scope here; the upstream
// gateway is expected to have validated the caller before setting it.
const PrincipalHeader = "X-Principal"

// PrincipalMiddleware resolves the acting principal for the request and
// stores it in the Gin context so handlers can pass it explicitly into every
// mutating ledger operation.
func PrincipalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := c.GetHeader(PrincipalHeader)
		if principal == "" {
			principal = AnonymousPrincipal
		}
		c.Set(string(principalKey), principal)
		c.Next()
	}
}

// GetPrincipalFromContext returns the acting principal for the request.
func GetPrincipalFromContext(c *gin.Context) string {
	if v, ok := c.Get(string(principalKey)); ok {
		if principal, ok := v.(string); ok && principal != "" {
			return principal
		}
	}
	return AnonymousPrincipal
}
