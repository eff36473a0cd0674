package service

import (
	"Loyo/dao"
	"Loyo/models"
	"Loyo/pkg/idgen"
	"Loyo/pkg/log"
	"Loyo/pkg/response"
	"Loyo/types"
	"context"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type BusinessService struct {
	BusinessDAO *dao.Business
	ClassDAO    *dao.CustomerClass
	Class       IClassService
	Link        ILinkService
}

var _ IBusinessService = (*BusinessService)(nil)

type IBusinessService interface {
	CreateBusiness(ctx context.Context, req *types.CreateBusinessReq) (*models.Business, error)
	GetBusiness(ctx context.Context, id string) (*models.Business, error)
	UpdateSettings(ctx context.Context, id string, req *types.UpdateBusinessSettingsReq) (*models.Business, error)
	Deactivate(ctx context.Context, id string) error
}

// CreateBusiness 开户即自动建好 General / Referral 两个永久等级，
// 等级建失败则整体失败，不留下没有默认等级的商家。
func (s *BusinessService) CreateBusiness(ctx context.Context, req *types.CreateBusinessReq) (*models.Business, error) {
	existing, err := s.BusinessDAO.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}

	allowPublic := true
	if req.AllowPublicMembership != nil {
		allowPublic = *req.AllowPublicMembership
	}

	b := &models.Business{
		ID:                    idgen.Generate(req.Name, taken),
		OwnerID:               req.OwnerID,
		Name:                  req.Name,
		ContactEmail:          req.ContactEmail,
		ContactPhone:          req.ContactPhone,
		Address:               req.Address,
		Active:                true,
		AllowPublicMembership: allowPublic,
		Settings: datatypes.NewJSONType(models.BusinessSettings{
			PointsToCurrencyRate:   models.PointsToCurrencyRate,
			AllowCustomClasses:     true,
			DefaultReferralRouting: models.RoutingReferralClass,
		}),
	}
	if err := s.BusinessDAO.Create(ctx, b); err != nil {
		return nil, err
	}

	for _, name := range []string{models.ClassNameGeneral, models.ClassNameReferral} {
		if _, err := s.createPermanentClass(ctx, b.ID, name); err != nil {
			return nil, err
		}
	}

	log.L.Info("business created",
		zap.String("business_id", b.ID),
		zap.String("owner_id", b.OwnerID),
		zap.String("name", b.Name))
	return b, nil
}

// createPermanentClass 永久等级随商家生成，带各自的报名链接和二维码。
// 二维码上传失败只记日志，链接仍然可用。
func (s *BusinessService) createPermanentClass(ctx context.Context, businessID, name string) (*models.CustomerClass, error) {
	used, err := s.ClassDAO.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]struct{}, len(used))
	for _, id := range used {
		taken[id] = struct{}{}
	}

	class := &models.CustomerClass{
		ID:         idgen.Generate(businessID+" "+name, taken),
		BusinessID: businessID,
		Name:       name,
		Type:       models.ClassTypePermanent,
		Active:     true,
		Benefits:   datatypes.NewJSONType(models.DefaultBenefits()),
	}
	class.SignupURL = s.Link.SignupURL(businessID, class.ID, "")
	if qrURL, err := s.Link.UploadQr(ctx, businessID, []byte(class.SignupURL)); err == nil {
		class.QrURL = qrURL
	} else {
		logSecondary("upload class qr failed", "", businessID, err)
	}

	if err := s.ClassDAO.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *BusinessService) GetBusiness(ctx context.Context, id string) (*models.Business, error) {
	b, err := s.BusinessDAO.FindByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "商家不存在")
	}
	return b, nil
}

// UpdateSettings 积分汇率是进程级常量，请求里带了也会被覆盖写回
func (s *BusinessService) UpdateSettings(ctx context.Context, id string, req *types.UpdateBusinessSettingsReq) (*models.Business, error) {
	b, err := s.BusinessDAO.FindByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, "商家不存在")
	}
	if !b.Active {
		return nil, response.NewConflict("商家已停用")
	}

	settings := b.Settings.Data()
	if req.AllowCustomClasses != nil {
		settings.AllowCustomClasses = *req.AllowCustomClasses
	}
	if req.DefaultReferralRouting != nil {
		routing := models.ReferralRouting(*req.DefaultReferralRouting)
		if !routing.Valid() {
			return nil, response.NewInvalid("不支持的推荐路由策略: " + *req.DefaultReferralRouting)
		}
		settings.DefaultReferralRouting = routing
	}
	if req.CustomReferralClassID != nil {
		if *req.CustomReferralClassID != "" {
			class, err := s.Class.GetClass(ctx, *req.CustomReferralClassID)
			if err != nil {
				return nil, err
			}
			if class.BusinessID != id {
				return nil, response.NewInvalid("自定义推荐等级不属于该商家")
			}
		}
		settings.CustomReferralClassID = *req.CustomReferralClassID
	}
	settings.PointsToCurrencyRate = models.PointsToCurrencyRate

	updates := map[string]any{"settings": datatypes.NewJSONType(settings)}
	if req.AllowPublicMembership != nil {
		updates["allow_public_membership"] = *req.AllowPublicMembership
	}

	if err := s.BusinessDAO.UpdateByID(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.BusinessDAO.FindByID(ctx, id)
}

// Deactivate 软停用，历史账本和会员关系保留
func (s *BusinessService) Deactivate(ctx context.Context, id string) error {
	b, err := s.BusinessDAO.FindByID(ctx, id)
	if err != nil {
		return orNotFound(err, "商家不存在")
	}
	if !b.Active {
		return response.NewConflict("商家已停用")
	}
	return s.BusinessDAO.UpdateByID(ctx, id, map[string]any{"active": false})
}
