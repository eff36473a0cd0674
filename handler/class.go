package handler

import (
	"Loyo/config"
	"Loyo/middleware"
	"Loyo/pkg/context"
	"Loyo/pkg/response"
	"Loyo/service"
	"Loyo/types"

	"github.com/gin-gonic/gin"
)

type Class struct {
	Config       *config.Config
	ClassService service.IClassService
}

func (h *Class) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	classes := r.Group("/v1/businesses/:business_id/classes")
	classes.POST("/create", authorize, context.Wrap(h.CreateClass))
	classes.GET("/list", authorize, context.Wrap(h.ListClasses))

	class := r.Group("/v1/classes")
	class.GET("/:class_id", authorize, context.Wrap(h.GetClass))
	class.POST("/:class_id/update", authorize, context.Wrap(h.UpdateClass))
	class.POST("/:class_id/recount", authorize, context.Wrap(h.RecountCustomers))
}

// CreateClass 商家自建等级；General / Referral 随开户生成，不走这里
func (h *Class) CreateClass(c *gin.Context) error {
	var req types.CreateClassReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewInvalid(err.Error())
	}

	class, err := h.ClassService.CreateCustomClass(c, c.Param("business_id"), &req)
	if err != nil {
		return err
	}
	response.Success(c, class)
	return nil
}

// ListClasses 永久等级排前面
func (h *Class) ListClasses(c *gin.Context) error {
	classes, err := h.ClassService.ListClasses(c, c.Param("business_id"))
	if err != nil {
		return err
	}
	response.Success(c, classes)
	return nil
}

func (h *Class) GetClass(c *gin.Context) error {
	class, err := h.ClassService.GetClass(c, c.Param("class_id"))
	if err != nil {
		return err
	}
	response.Success(c, class)
	return nil
}

func (h *Class) UpdateClass(c *gin.Context) error {
	var req types.UpdateClassReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewInvalid(err.Error())
	}

	class, err := h.ClassService.UpdateClass(c, c.Param("class_id"), &req)
	if err != nil {
		return err
	}
	response.Success(c, class)
	return nil
}

// RecountCustomers 从权威会员记录重算等级人数（计数漂移时的校正入口）
func (h *Class) RecountCustomers(c *gin.Context) error {
	total, err := h.ClassService.RecomputeTotalCustomers(c, c.Param("class_id"))
	if err != nil {
		return err
	}
	response.Success(c, gin.H{"total_customers": total})
	return nil
}
