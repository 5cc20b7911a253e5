package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rahvarz/bazar/internal/auth"
	authdomain "github.com/rahvarz/bazar/internal/auth/domain"
	"github.com/rahvarz/bazar/internal/category"
	categorydomain "github.com/rahvarz/bazar/internal/category/domain"
	"github.com/rahvarz/bazar/internal/config"
	"github.com/rahvarz/bazar/internal/contact"
	contactdomain "github.com/rahvarz/bazar/internal/contact/domain"
	"github.com/rahvarz/bazar/internal/expression"
	expressiondomain "github.com/rahvarz/bazar/internal/expression/domain"
	"github.com/rahvarz/bazar/internal/image"
	imagedomain "github.com/rahvarz/bazar/internal/image/domain"
	"github.com/rahvarz/bazar/internal/offer"
	offerdomain "github.com/rahvarz/bazar/internal/offer/domain"
	"github.com/rahvarz/bazar/internal/product"
	productdomain "github.com/rahvarz/bazar/internal/product/domain"
	"github.com/rahvarz/bazar/internal/providers/email"
	"github.com/rahvarz/bazar/internal/review"
	reviewdomain "github.com/rahvarz/bazar/internal/review/domain"
	"github.com/rahvarz/bazar/internal/sweep"
	"github.com/rahvarz/bazar/internal/warehouse"
	warehousedomain "github.com/rahvarz/bazar/internal/warehouse/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	email.Module,
	auth.Module,
	category.Module,
	product.Module,
	warehouse.Module,
	offer.Module,
	image.Module,
	expression.Module,
	review.Module,
	contact.Module,
	sweep.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, metrics *HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(MetricsMiddleware(metrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(log *zap.Logger) *gin.Engine {
	return NewEngine(log, NewHTTPMetrics())
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	genID         *snowflake.Node
	authSvc       authdomain.Service
	categorySvc   categorydomain.Service
	productSvc    productdomain.Service
	warehouseSvc  warehousedomain.Service
	offerSvc      offerdomain.Service
	imageSvc      imagedomain.Service
	expressionSvc expressiondomain.Service
	reviewSvc     reviewdomain.Service
	contactSvc    contactdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	GenID         *snowflake.Node
	AuthSvc       authdomain.Service
	CategorySvc   categorydomain.Service
	ProductSvc    productdomain.Service
	WarehouseSvc  warehousedomain.Service
	OfferSvc      offerdomain.Service
	ImageSvc      imagedomain.Service
	ExpressionSvc expressiondomain.Service
	ReviewSvc     reviewdomain.Service
	ContactSvc    contactdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		genID:         p.GenID,
		authSvc:       p.AuthSvc,
		categorySvc:   p.CategorySvc,
		productSvc:    p.ProductSvc,
		warehouseSvc:  p.WarehouseSvc,
		offerSvc:      p.OfferSvc,
		imageSvc:      p.ImageSvc,
		expressionSvc: p.ExpressionSvc,
		reviewSvc:     p.ReviewSvc,
		contactSvc:    p.ContactSvc,
	}

	s.registerRoutes()
	return s
}
