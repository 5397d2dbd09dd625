package router

import (
	"pointmall/internal/handlers"
	"pointmall/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Points   handlers.PointsService
	Accounts handlers.AccountService
	Recharge handlers.RechargeService
	Catalog  handlers.CatalogService
	Tokens   middleware.TokenResolver
	Logger   *zap.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Handlers
	pointsHandler := handlers.NewPointsHandler(d.Points)
	authHandler := handlers.NewAuthHandler(d.Accounts, d.Logger)
	userHandler := handlers.NewUserHandler()
	rechargeHandler := handlers.NewRechargeHandler(d.Recharge)
	adminHandler := handlers.NewAdminHandler(d.Catalog)

	api := r.Group("/")
	api.Use(middleware.LoadUser(d.Tokens, d.Accounts))

	// 公共路由 (Public Routes)
	api.GET("/points/list", pointsHandler.List)             // 可兑换商品
	api.GET("/recharge/packages", rechargeHandler.Packages) // 充值商品
	api.POST("/recharge/notify", rechargeHandler.Notify)    // 支付回调，签名校验
	api.POST("/auth/register", authHandler.Register)        // 注册
	api.POST("/auth/login", authHandler.Login)              // 登录
	api.POST("/auth/logout", authHandler.Logout)            // 退出登录

	// 受保护路由 (Protected Routes)
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/points/exchange", pointsHandler.Exchange) // 积分兑换
		authorized.GET("/points/records", pointsHandler.Records)    // 兑换记录
		authorized.GET("/points/logs", pointsHandler.Logs)          // 积分明细
		authorized.POST("/points/checkin", pointsHandler.CheckIn)   // 每日签到
		authorized.GET("/user/info", userHandler.Info)              // 账户信息

		authorized.POST("/recharge/order", rechargeHandler.CreateOrder) // 充值下单
		authorized.GET("/recharge/orders", rechargeHandler.Orders)      // 我的订单
	}

	// 管理路由 (Admin Routes)
	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.POST("/points/items", adminHandler.CreateItem)       // 上架商品
		admin.PUT("/points/items/:id", adminHandler.UpdateItem)    // 修改商品
		admin.DELETE("/points/items/:id", adminHandler.DeleteItem) // 下架商品
	}
}
