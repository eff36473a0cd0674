package service

import (
	"Loyo/dao"
	"Loyo/models"
	"Loyo/pkg/idgen"
	"Loyo/pkg/log"
	"Loyo/pkg/response"
	"Loyo/types"
	"context"
	"errors"

	cmap "github.com/orcaman/concurrent-map/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ClassService struct {
	ClassDAO      *dao.CustomerClass
	MembershipDAO *dao.Membership

	// 进程内读缓存，路由决策/触发评估的热路径少打一次库。
	// 任何写操作后失效对应条目。
	cache cmap.ConcurrentMap[string, *models.CustomerClass]
}

func NewClassService(classDAO *dao.CustomerClass, membershipDAO *dao.Membership) *ClassService {
	return &ClassService{
		ClassDAO:      classDAO,
		MembershipDAO: membershipDAO,
		cache:         cmap.New[*models.CustomerClass](),
	}
}

var _ IClassService = (*ClassService)(nil)

type IClassService interface {
	CreateCustomClass(ctx context.Context, businessID string, req *types.CreateClassReq) (*models.CustomerClass, error)
	GetClass(ctx context.Context, id string) (*models.CustomerClass, error)
	ListClasses(ctx context.Context, businessID string) ([]models.CustomerClass, error)
	UpdateClass(ctx context.Context, id string, req *types.UpdateClassReq) (*models.CustomerClass, error)
	IncrCounter(ctx context.Context, id, column string, delta int64)
	RecomputeTotalCustomers(ctx context.Context, id string) (int64, error)
}

// CreateCustomClass 商家自建等级。积分规则不允许负数，权益给默认值
func (s *ClassService) CreateCustomClass(ctx context.Context, businessID string, req *types.CreateClassReq) (*models.CustomerClass, error) {
	welcome, referrer, referred := int64(0), int64(0), int64(0)
	if req.WelcomePoints != nil {
		welcome = *req.WelcomePoints
	}
	if req.ReferrerPoints != nil {
		referrer = *req.ReferrerPoints
	}
	if req.ReferredPoints != nil {
		referred = *req.ReferredPoints
	}
	if welcome < 0 || referrer < 0 || referred < 0 {
		return nil, response.NewInvalid("积分规则不允许负数")
	}

	benefits := models.DefaultBenefits()
	if req.PointsMultiplier != nil {
		if *req.PointsMultiplier < 0 {
			return nil, response.NewInvalid("积分倍率不允许负数")
		}
		benefits.PointsMultiplier = *req.PointsMultiplier
	}
	if req.DiscountPercentage != nil {
		if *req.DiscountPercentage < 0 || *req.DiscountPercentage > 100 {
			return nil, response.NewInvalid("折扣比例必须在 0~100 之间")
		}
		benefits.DiscountPercentage = *req.DiscountPercentage
	}
	if req.FreeDelivery != nil {
		benefits.FreeDelivery = *req.FreeDelivery
	}
	if req.PriorityService != nil {
		benefits.PriorityService = *req.PriorityService
	}

	existing, err := s.usedClassIDs(ctx)
	if err != nil {
		return nil, err
	}

	class := &models.CustomerClass{
		ID:             idgen.Generate(req.Name, existing),
		BusinessID:     businessID,
		Name:           req.Name,
		Description:    req.Description,
		Type:           models.ClassTypeCustom,
		Active:         true,
		WelcomePoints:  welcome,
		ReferrerPoints: referrer,
		ReferredPoints: referred,
		Benefits:       datatypes.NewJSONType(benefits),
	}
	if err := s.ClassDAO.Create(ctx, class); err != nil {
		return nil, err
	}
	return class, nil
}

func (s *ClassService) GetClass(ctx context.Context, id string) (*models.CustomerClass, error) {
	if class, ok := s.cache.Get(id); ok {
		return class, nil
	}

	class, err := s.ClassDAO.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("等级不存在")
		}
		return nil, err
	}

	s.cache.Set(id, class)
	return class, nil
}

func (s *ClassService) ListClasses(ctx context.Context, businessID string) ([]models.CustomerClass, error) {
	return s.ClassDAO.ListByBusiness(ctx, businessID)
}

// UpdateClass 部分更新。永久等级的名称和描述不允许改
func (s *ClassService) UpdateClass(ctx context.Context, id string, req *types.UpdateClassReq) (*models.CustomerClass, error) {
	class, err := s.ClassDAO.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("等级不存在")
		}
		return nil, err
	}

	data := map[string]interface{}{}

	if req.Name != nil || req.Description != nil {
		if class.IsPermanent() {
			return nil, response.NewInvalid("永久等级不允许修改名称和描述")
		}
		if req.Name != nil {
			data["name"] = *req.Name
		}
		if req.Description != nil {
			data["description"] = *req.Description
		}
	}
	if req.Active != nil {
		data["active"] = *req.Active
	}

	if req.WelcomePoints != nil {
		if *req.WelcomePoints < 0 {
			return nil, response.NewInvalid("积分规则不允许负数")
		}
		data["welcome_points"] = *req.WelcomePoints
	}
	if req.ReferrerPoints != nil {
		if *req.ReferrerPoints < 0 {
			return nil, response.NewInvalid("积分规则不允许负数")
		}
		data["referrer_points"] = *req.ReferrerPoints
	}
	if req.ReferredPoints != nil {
		if *req.ReferredPoints < 0 {
			return nil, response.NewInvalid("积分规则不允许负数")
		}
		data["referred_points"] = *req.ReferredPoints
	}

	if req.PointsMultiplier != nil || req.DiscountPercentage != nil ||
		req.FreeDelivery != nil || req.PriorityService != nil {
		benefits := class.Benefits.Data()
		if req.PointsMultiplier != nil {
			if *req.PointsMultiplier < 0 {
				return nil, response.NewInvalid("积分倍率不允许负数")
			}
			benefits.PointsMultiplier = *req.PointsMultiplier
		}
		if req.DiscountPercentage != nil {
			if *req.DiscountPercentage < 0 || *req.DiscountPercentage > 100 {
				return nil, response.NewInvalid("折扣比例必须在 0~100 之间")
			}
			benefits.DiscountPercentage = *req.DiscountPercentage
		}
		if req.FreeDelivery != nil {
			benefits.FreeDelivery = *req.FreeDelivery
		}
		if req.PriorityService != nil {
			benefits.PriorityService = *req.PriorityService
		}
		data["benefits"] = datatypes.NewJSONType(benefits)
	}

	if len(data) == 0 {
		return class, nil
	}

	if err := s.ClassDAO.UpdateByID(ctx, id, data); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("等级不存在")
		}
		return nil, err
	}
	s.cache.Remove(id)

	return s.ClassDAO.FindByID(ctx, id)
}

// IncrCounter 统计计数增量更新。作为别的操作成功路径上的附带动作，
// 失败打日志不回滚，后续靠全量重算兜底
func (s *ClassService) IncrCounter(ctx context.Context, id, column string, delta int64) {
	if err := s.ClassDAO.IncrCounter(ctx, id, column, delta); err != nil {
		log.L.Error("incr class counter failed",
			zap.String("class_id", id),
			zap.String("column", column),
			zap.Int64("delta", delta),
			zap.Error(err),
		)
	}
	s.cache.Remove(id)
}

// RecomputeTotalCustomers 扫活跃会员做权威重算，修复增量计数漂移
func (s *ClassService) RecomputeTotalCustomers(ctx context.Context, id string) (int64, error) {
	if _, err := s.GetClass(ctx, id); err != nil {
		return 0, err
	}

	total, err := s.MembershipDAO.CountActiveByClass(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.ClassDAO.SetTotalCustomers(ctx, id, total); err != nil {
		return 0, err
	}
	s.cache.Remove(id)
	return total, nil
}

func (s *ClassService) usedClassIDs(ctx context.Context) (map[string]struct{}, error) {
	ids, err := s.ClassDAO.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
