package handler

import (
	"Loyo/config"
	"Loyo/middleware"
	"Loyo/models"
	"Loyo/pkg/context"
	"Loyo/pkg/response"
	"Loyo/service"
	"Loyo/types"

	"github.com/gin-gonic/gin"
)

type Migration struct {
	Config           *config.Config
	MigrationService service.IMigrationService
}

func (h *Migration) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	migrations := r.Group("/v1/businesses/:business_id/migrations")
	migrations.POST("/create", authorize, context.Wrap(h.Migrate))

	triggers := r.Group("/v1/businesses/:business_id/triggers")
	triggers.POST("/create", authorize, context.Wrap(h.CreateTrigger))
	triggers.GET("/list", authorize, context.Wrap(h.ListTriggers))
}

// Migrate 商家侧手动/任务迁移
func (h *Migration) Migrate(c *gin.Context) error {
	var req types.MigrateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewInvalid(err.Error())
	}

	record, err := h.MigrationService.Migrate(c, c.Param("business_id"), &req, models.InitiatorBusiness)
	if err != nil {
		return err
	}
	response.Success(c, record)
	return nil
}

func (h *Migration) CreateTrigger(c *gin.Context) error {
	var req types.CreateTriggerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewInvalid(err.Error())
	}

	trigger, err := h.MigrationService.CreateTrigger(c, c.Param("business_id"), &req)
	if err != nil {
		return err
	}
	response.Success(c, trigger)
	return nil
}

func (h *Migration) ListTriggers(c *gin.Context) error {
	triggers, err := h.MigrationService.ListTriggers(c, c.Param("business_id"))
	if err != nil {
		return err
	}
	response.Success(c, triggers)
	return nil
}
