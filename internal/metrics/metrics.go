package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pointmall_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pointmall_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// result: success / insufficient / not_found / catalog / invalid / failed
	RedeemTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pointmall_redeem_total",
			Help: "Total number of points redemptions",
		},
		[]string{"type", "result"},
	)

	RedeemPointsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pointmall_redeem_points_total",
			Help: "Total points spent on redemptions",
		},
	)

	RedeemDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pointmall_redeem_duration_seconds",
			Help:    "Duration of redemption transactions",
			Buckets: prometheus.DefBuckets,
		},
	)

	// result: paid / duplicate / ignored / rejected / failed
	RechargeCallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pointmall_recharge_callback_total",
			Help: "Total number of payment callbacks",
		},
		[]string{"result"},
	)

	RechargeOrderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pointmall_recharge_order_total",
			Help: "Total number of recharge orders created",
		},
		[]string{"type"},
	)

	VipExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pointmall_vip_expired_total",
			Help: "Total number of VIP memberships marked expired",
		},
	)
)
