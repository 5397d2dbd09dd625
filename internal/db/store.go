package db

import (
	"context"
	"errors"
	"time"

	"pointmall/internal/models"
	"pointmall/internal/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store 基于 gorm 的数据访问，实现 services 包中定义的各个 Store 接口
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

var (
	_ services.PointsStore   = (*Store)(nil)
	_ services.CatalogStore  = (*Store)(nil)
	_ services.RechargeStore = (*Store)(nil)
	_ services.AccountStore  = (*Store)(nil)
	_ services.VipStore      = (*Store)(nil)
	_ services.Tx            = (*txStore)(nil)
)

// first 查询单行，不存在时返回 (nil, nil)
func first[T any](q *gorm.DB, conds ...interface{}) (*T, error) {
	var out T
	if err := q.First(&out, conds...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (s *Store) Transaction(ctx context.Context, fn func(tx services.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txStore{tx: tx})
	})
}

// byUser 按用户过滤的基础查询，可重复用于 Count 和 Find
func (s *Store) byUser(ctx context.Context, model interface{}, userID uint) *gorm.DB {
	return s.db.WithContext(ctx).Model(model).Where("user_id = ?", userID).Session(&gorm.Session{})
}

func (s *Store) ListActiveItems(ctx context.Context) ([]models.ExchangeItem, error) {
	var items []models.ExchangeItem
	err := s.db.WithContext(ctx).
		Where("status = ?", models.ExchangeItemActive).
		Order("sort ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (s *Store) ListExchangeLogs(ctx context.Context, userID uint, offset, limit int) ([]models.ExchangeLog, int64, error) {
	var (
		logs  []models.ExchangeLog
		total int64
	)
	q := s.byUser(ctx, &models.ExchangeLog{}, userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, total, err
}

func (s *Store) ListPointLogs(ctx context.Context, userID uint, offset, limit int) ([]models.PointLog, int64, error) {
	var (
		logs  []models.PointLog
		total int64
	)
	q := s.byUser(ctx, &models.PointLog{}, userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, total, err
}

func (s *Store) FindItem(ctx context.Context, itemID uint) (*models.ExchangeItem, error) {
	return first[models.ExchangeItem](s.db.WithContext(ctx), itemID)
}

func (s *Store) CreateItem(ctx context.Context, item *models.ExchangeItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) SaveItem(ctx context.Context, item *models.ExchangeItem) error {
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) GetVipCard(ctx context.Context, cardID uint) (*models.VipCard, error) {
	return first[models.VipCard](s.db.WithContext(ctx), cardID)
}

func (s *Store) GetCoinPackage(ctx context.Context, packageID uint) (*models.CoinPackage, error) {
	return first[models.CoinPackage](s.db.WithContext(ctx), packageID)
}

func (s *Store) ListVipCards(ctx context.Context) ([]models.VipCard, error) {
	var cards []models.VipCard
	err := s.db.WithContext(ctx).Where("status = ?", models.CatalogActive).Order("id ASC").Find(&cards).Error
	return cards, err
}

func (s *Store) ListCoinPackages(ctx context.Context) ([]models.CoinPackage, error) {
	var pkgs []models.CoinPackage
	err := s.db.WithContext(ctx).Where("status = ?", models.CatalogActive).Order("price ASC").Find(&pkgs).Error
	return pkgs, err
}

func (s *Store) CreateOrder(ctx context.Context, order *models.RechargeOrder) error {
	return s.db.WithContext(ctx).Create(order).Error
}

func (s *Store) ListOrders(ctx context.Context, userID uint, offset, limit int) ([]models.RechargeOrder, int64, error) {
	var (
		orders []models.RechargeOrder
		total  int64
	)
	q := s.byUser(ctx, &models.RechargeOrder{}, userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&orders).Error
	return orders, total, err
}

func (s *Store) FindUserByUUID(ctx context.Context, uuid string) (*models.User, error) {
	return first[models.User](s.db.WithContext(ctx).Where("uuid = ?", uuid))
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return first[models.User](s.db.WithContext(ctx).Where("email = ?", email))
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) ExpireVip(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("is_vip = ? AND vip_expire_time < ?", true, now).
		Updates(map[string]interface{}{
			"is_vip":      false,
			"vip_expired": true,
		})
	return res.RowsAffected, res.Error
}

// txStore 事务内的读写
type txStore struct {
	tx *gorm.DB
}

func (t *txStore) LockUser(userID uint) (*models.User, error) {
	user, err := first[models.User](t.tx.Clauses(clause.Locking{Strength: "UPDATE"}), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, services.ErrAccountNotFound
	}
	return user, nil
}

func (t *txStore) FindActiveItem(itemID uint) (*models.ExchangeItem, error) {
	return first[models.ExchangeItem](t.tx.Where("status = ?", models.ExchangeItemActive), itemID)
}

func (t *txStore) FindVipCard(cardID uint) (*models.VipCard, error) {
	return first[models.VipCard](t.tx, cardID)
}

func (t *txStore) FindCoinPackage(packageID uint) (*models.CoinPackage, error) {
	return first[models.CoinPackage](t.tx, packageID)
}

func (t *txStore) CountPointLogsSince(userID uint, reason string, since time.Time) (int64, error) {
	var count int64
	err := t.tx.Model(&models.PointLog{}).
		Where("user_id = ? AND reason = ? AND created_at >= ?", userID, reason, since).
		Count(&count).Error
	return count, err
}

func (t *txStore) AdjustPoints(userID uint, delta int) (bool, error) {
	res := t.tx.Model(&models.User{}).
		Where("id = ? AND points + ? >= 0", userID, delta).
		UpdateColumn("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (t *txStore) AddCoin(userID uint, amount int) error {
	return t.tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("coin", gorm.Expr("coin + ?", amount)).
		Error
}

func (t *txStore) GrantVip(userID, cardID uint, expireAt time.Time) error {
	return t.tx.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_vip":          true,
			"vip_expired":     false,
			"vip_card_id":     cardID,
			"vip_expire_time": expireAt,
		}).Error
}

func (t *txStore) CreatePointLog(log *models.PointLog) error {
	return t.tx.Create(log).Error
}

func (t *txStore) CreateExchangeLog(log *models.ExchangeLog) error {
	return t.tx.Create(log).Error
}

func (t *txStore) LockOrder(orderNo string) (*models.RechargeOrder, error) {
	return first[models.RechargeOrder](t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("order_no = ?", orderNo))
}

func (t *txStore) MarkOrderPaid(orderID uint, tradeNo string, paidAt time.Time) error {
	return t.tx.Model(&models.RechargeOrder{}).
		Where("id = ? AND status = ?", orderID, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":   models.OrderStatusPaid,
			"trade_no": tradeNo,
			"paid_at":  paidAt,
		}).Error
}
