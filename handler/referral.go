package handler

import (
	"Loyo/config"
	"Loyo/middleware"
	"Loyo/pkg/context"
	"Loyo/pkg/response"
	"Loyo/service"
	"Loyo/types"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Referral struct {
	Config          *config.Config
	ReferralService service.IReferralService
	LinkService     service.ILinkService
}

func (h *Referral) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	referrals := r.Group("/v1/referrals")
	referrals.POST("/create", authorize, context.Wrap(h.CreateReferral))
	referrals.POST("/distribute", authorize, context.Wrap(h.DistributePoints))
	referrals.GET("/:referral_id", authorize, context.Wrap(h.GetReferral))
	referrals.GET("/link/:business_id", authorize, context.Wrap(h.GetLink))

	businessReferrals := r.Group("/v1/businesses/:business_id/referrals")
	businessReferrals.GET("/list", authorize, context.Wrap(h.ListReferrals))
	businessReferrals.POST("/:referral_id/cancel", authorize, context.Wrap(h.CancelReferral))
}

// CreateReferral 当前客户作为推荐人发起推荐
func (h *Referral) CreateReferral(c *gin.Context) error {
	var req types.CreateReferralReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewInvalid(err.Error())
	}
	customerID, err := context.GetCustomerID(c)
	if err != nil {
		return err
	}

	referral, err := h.ReferralService.CreateReferral(c, req.BusinessID, customerID, req.ReferredID)
	if err != nil {
		return err
	}
	response.Success(c, referral)
	return nil
}

// DistributePoints 推荐积分发放。重复调用会被完成态挡住，不会重复加分
func (h *Referral) DistributePoints(c *gin.Context) error {
	var req types.DistributeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewInvalid(err.Error())
	}

	referral, err := h.ReferralService.DistributePoints(c, req.ReferralID, req.BusinessID)
	if err != nil {
		return err
	}
	response.Success(c, referral)
	return nil
}

func (h *Referral) GetReferral(c *gin.Context) error {
	id, err := strconv.ParseInt(c.Param("referral_id"), 10, 64)
	if err != nil || id == 0 {
		return response.NewInvalid("referral_id参数错误")
	}

	referral, err := h.ReferralService.GetReferral(c, id)
	if err != nil {
		return err
	}
	response.Success(c, referral)
	return nil
}

// ListReferrals 商家侧查看全量推荐记录
func (h *Referral) ListReferrals(c *gin.Context) error {
	referrals, err := h.ReferralService.ListReferrals(c, c.Param("business_id"))
	if err != nil {
		return err
	}
	response.Success(c, referrals)
	return nil
}

// CancelReferral 放弃一条未完成的推荐
func (h *Referral) CancelReferral(c *gin.Context) error {
	id, err := strconv.ParseInt(c.Param("referral_id"), 10, 64)
	if err != nil || id == 0 {
		return response.NewInvalid("referral_id参数错误")
	}

	referral, err := h.ReferralService.CancelReferral(c, id, c.Param("business_id"))
	if err != nil {
		return err
	}
	response.Success(c, referral)
	return nil
}

// GetLink 当前客户在某商家的分享链接（不存在则返回 404，入会时会懒创建）
func (h *Referral) GetLink(c *gin.Context) error {
	customerID, err := context.GetCustomerID(c)
	if err != nil {
		return err
	}

	link, err := h.LinkService.GetLink(c, customerID, c.Param("business_id"))
	if err != nil {
		return err
	}
	response.Success(c, types.ReferralLinkResp{
		Code:                link.Code,
		URL:                 link.URL,
		QrURL:               link.QrURL,
		TotalReferrals:      link.TotalReferrals,
		TotalReferralPoints: link.TotalReferralPoints,
	})
	return nil
}
