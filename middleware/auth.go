package middleware

import (
	"net/http"
	"strings"

	"Loyo/pkg/context"
	"Loyo/pkg/jwt"
	"Loyo/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth 解析外部身份服务签发的访问令牌，注入稳定的 customer_id。
// 会话的签发与续期不在本服务内。
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return
		}

		claims, err := jwt.ParseToken(secret, "access", parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(context.CtxCustomerID, claims.CustomerID)

		c.Next()
	}
}
