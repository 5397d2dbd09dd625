package db

import (
	"pointmall/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init 连接数据库并完成迁移，seed 为 true 时写入初始商品目录
func Init(dsn string, seed bool, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	logger.Info("Database connection established")

	// Auto Migrate
	err = db.AutoMigrate(
		&models.User{},
		&models.PointLog{},
		&models.VipCard{},
		&models.CoinPackage{},
		&models.ExchangeItem{},
		&models.ExchangeLog{},
		&models.RechargeOrder{},
	)
	if err != nil {
		return nil, err
	}
	logger.Info("Database migration completed")

	if seed {
		seedCatalog(db, logger)
	}
	return db, nil
}

// Close 关闭底层连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func seedCatalog(db *gorm.DB, logger *zap.Logger) {
	// 检查是否已有会员卡数据
	var count int64
	db.Model(&models.VipCard{}).Count(&count)
	if count > 0 {
		logger.Info("Catalog already seeded, skipping")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		cards := []models.VipCard{
			{Name: "周卡", Duration: 7, DurationUnit: models.UnitDay, Price: 600, Status: models.CatalogActive},
			{Name: "月卡", Duration: 1, DurationUnit: models.UnitMonth, Price: 1800, Status: models.CatalogActive},
			{Name: "年卡", Duration: 1, DurationUnit: models.UnitYear, Price: 16800, Status: models.CatalogActive},
			{Name: "永久卡", Duration: models.UnlimitedDuration, DurationUnit: models.UnitDay, Price: 39800, Status: models.CatalogActive},
		}
		if err := tx.Create(&cards).Error; err != nil {
			return err
		}

		packages := []models.CoinPackage{
			{Name: "100金币", Coin: 100, Price: 100, Status: models.CatalogActive},
			{Name: "600金币", Coin: 600, Price: 600, Status: models.CatalogActive},
			{Name: "3000金币", Coin: 3000, Price: 2800, Status: models.CatalogActive},
		}
		if err := tx.Create(&packages).Error; err != nil {
			return err
		}

		items := []models.ExchangeItem{
			{Name: "周卡会员", Type: models.RewardVip, Value: int(cards[0].ID), Cost: 300, Description: "兑换后立即生效，**7天**免广告观看", Sort: 1, Status: models.ExchangeItemActive},
			{Name: "月卡会员", Type: models.RewardVip, Value: int(cards[1].ID), Cost: 1000, Description: "兑换后立即生效", Sort: 2, Status: models.ExchangeItemActive},
			{Name: "50金币", Type: models.RewardCoin, Value: 50, Cost: 60, Description: "可用于解锁付费章节", Sort: 3, Status: models.ExchangeItemActive},
			{Name: "200金币", Type: models.RewardCoin, Value: 200, Cost: 200, Description: "可用于解锁付费章节", Sort: 4, Status: models.ExchangeItemActive},
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		logger.Error("Failed to seed catalog", zap.Error(err))
		return
	}
	logger.Info("Initial catalog created successfully")
}
