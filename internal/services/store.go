package services

import (
	"context"
	"time"

	"pointmall/internal/models"
)

// Tx is the set of writes and locked reads available inside one database
// transaction. Lookups return (nil, nil) when the row does not exist.
type Tx interface {
	LockUser(userID uint) (*models.User, error)
	FindActiveItem(itemID uint) (*models.ExchangeItem, error)
	FindVipCard(cardID uint) (*models.VipCard, error)
	FindCoinPackage(packageID uint) (*models.CoinPackage, error)
	CountPointLogsSince(userID uint, reason string, since time.Time) (int64, error)

	// AdjustPoints applies a relative change and reports false when the
	// result would be negative.
	AdjustPoints(userID uint, delta int) (bool, error)
	AddCoin(userID uint, amount int) error
	GrantVip(userID, cardID uint, expireAt time.Time) error
	CreatePointLog(log *models.PointLog) error
	CreateExchangeLog(log *models.ExchangeLog) error

	LockOrder(orderNo string) (*models.RechargeOrder, error)
	MarkOrderPaid(orderID uint, tradeNo string, paidAt time.Time) error
}

// Transactor runs fn inside a transaction, rolling back when fn fails.
type Transactor interface {
	Transaction(ctx context.Context, fn func(tx Tx) error) error
}

type PointsStore interface {
	Transactor
	ListActiveItems(ctx context.Context) ([]models.ExchangeItem, error)
	ListExchangeLogs(ctx context.Context, userID uint, offset, limit int) ([]models.ExchangeLog, int64, error)
	ListPointLogs(ctx context.Context, userID uint, offset, limit int) ([]models.PointLog, int64, error)
}

type CatalogStore interface {
	FindItem(ctx context.Context, itemID uint) (*models.ExchangeItem, error)
	CreateItem(ctx context.Context, item *models.ExchangeItem) error
	SaveItem(ctx context.Context, item *models.ExchangeItem) error
	GetVipCard(ctx context.Context, cardID uint) (*models.VipCard, error)
}

type RechargeStore interface {
	Transactor
	ListVipCards(ctx context.Context) ([]models.VipCard, error)
	ListCoinPackages(ctx context.Context) ([]models.CoinPackage, error)
	GetVipCard(ctx context.Context, cardID uint) (*models.VipCard, error)
	GetCoinPackage(ctx context.Context, packageID uint) (*models.CoinPackage, error)
	CreateOrder(ctx context.Context, order *models.RechargeOrder) error
	ListOrders(ctx context.Context, userID uint, offset, limit int) ([]models.RechargeOrder, int64, error)
}

type AccountStore interface {
	FindUserByUUID(ctx context.Context, uuid string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

type VipStore interface {
	ExpireVip(ctx context.Context, now time.Time) (int64, error)
}
