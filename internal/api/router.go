package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	bookingHttp "github.com/nekogravitycat/shareit-backend/internal/booking/http"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	itemHttp "github.com/nekogravitycat/shareit-backend/internal/item/http"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	requestHttp "github.com/nekogravitycat/shareit-backend/internal/itemrequest/http"
	"github.com/nekogravitycat/shareit-backend/internal/user"
	userHttp "github.com/nekogravitycat/shareit-backend/internal/user/http"
)

type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       *zerolog.Logger

	MetricsEnabled bool
	RateLimitRPS   float64
	RateLimitBurst int

	UserService    user.Service
	ItemService    item.Service
	RequestService itemrequest.Service
	BookingService booking.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles the middleware chain and registers the routes of every module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// ClientIP keys the rate limiter, so forwarded headers are not trusted.
	_ = r.SetTrustedProxies(nil)
	logger := cfg.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	r.Use(gin.Recovery(), RequestLogger(logger))
	if cfg.MetricsEnabled {
		r.Use(Metrics())
	}

	corsConfig := cors.DefaultConfig()
	origins := splitOrigins(cfg.ProdOrigins)
	if cfg.IsProduction && len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", auth.SharerHeader}
	r.Use(cors.New(corsConfig))

	r.Use(RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	sharerMiddleware := auth.SharerRequired()

	root := &r.RouterGroup
	userHttp.RegisterRoutes(root, userHttp.NewHandler(cfg.UserService))
	itemHttp.RegisterRoutes(root, itemHttp.NewHandler(cfg.ItemService), sharerMiddleware)
	requestHttp.RegisterRoutes(root, requestHttp.NewHandler(cfg.RequestService), sharerMiddleware)
	bookingHttp.RegisterRoutes(root, bookingHttp.NewHandler(cfg.BookingService), sharerMiddleware)

	return r
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
