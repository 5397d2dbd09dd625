package services

import (
	"context"

	"pointmall/internal/models"
	"pointmall/internal/utils"

	"go.uber.org/zap"
)

type CatalogService struct {
	store  CatalogStore
	logger *zap.Logger
}

func NewCatalogService(store CatalogStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{store: store, logger: logger}
}

type ItemInput struct {
	Name        string            `json:"name" binding:"required,max=100"`
	Type        models.RewardType `json:"type" binding:"required,oneof=vip coin"`
	Value       int               `json:"value" binding:"required,gt=0"`
	Cost        int               `json:"cost" binding:"required,gt=0"`
	Description string            `json:"description"`
	Icon        string            `json:"icon" binding:"max=255"`
	Sort        int               `json:"sort"`
	Status      *int              `json:"status" binding:"omitempty,oneof=0 1"`
}

func (s *CatalogService) validate(ctx context.Context, in *ItemInput) error {
	in.Name = utils.StripTags(in.Name)
	if in.Name == "" {
		return validationError("商品名称不能为空")
	}
	if in.Cost <= 0 || in.Value <= 0 {
		return validationError("积分和奖励数值必须大于0")
	}
	switch in.Type {
	case models.RewardCoin:
	case models.RewardVip:
		card, err := s.store.GetVipCard(ctx, uint(in.Value))
		if err != nil {
			return err
		}
		if card == nil {
			return ErrRewardCatalogInconsistent
		}
	default:
		return validationError("未知的奖励类型")
	}
	return nil
}

func (s *CatalogService) CreateItem(ctx context.Context, in ItemInput) (*models.ExchangeItem, error) {
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	item := &models.ExchangeItem{Status: models.ExchangeItemActive}
	applyItemInput(item, in)
	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("exchange item created", zap.Uint("item_id", item.ID), zap.String("name", item.Name))
	return item, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, itemID uint, in ItemInput) (*models.ExchangeItem, error) {
	item, err := s.store.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	if err := s.validate(ctx, &in); err != nil {
		return nil, err
	}

	applyItemInput(item, in)
	if err := s.store.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DisableItem 下架商品，历史兑换记录仍引用该商品
func (s *CatalogService) DisableItem(ctx context.Context, itemID uint) error {
	item, err := s.store.FindItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	item.Status = models.ExchangeItemInactive
	return s.store.SaveItem(ctx, item)
}

func applyItemInput(item *models.ExchangeItem, in ItemInput) {
	item.Name = in.Name
	item.Type = in.Type
	item.Value = in.Value
	item.Cost = in.Cost
	item.Description = in.Description
	item.Icon = in.Icon
	item.Sort = in.Sort
	if in.Status != nil {
		item.Status = *in.Status
	}
}
