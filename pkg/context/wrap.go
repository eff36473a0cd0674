package context

import (
	"Loyo/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CtxCustomerID = "customer_id"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				c.JSON(http.StatusOK, response.Response{
					Code: be.Code,
					Msg:  be.Msg,
				})
				return
			}
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: 500,
				Msg:  err.Error(),
			})
		}
	}
}

// GetCustomerID 从认证中间件取当前客户ID（身份由外部身份服务签发）
func GetCustomerID(c *gin.Context) (string, error) {
	v, ok := c.Get(CtxCustomerID)
	if !ok {
		return "", errors.New("customer_id 不存在")
	}

	cid, ok := v.(string)
	if !ok || cid == "" {
		return "", errors.New("customer_id 类型错误")
	}

	return cid, nil
}
