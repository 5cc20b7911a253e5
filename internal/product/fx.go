package product

import (
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/product/repository"
	"github.com/rahvarz/bazar/internal/product/service"
	"github.com/rahvarz/bazar/internal/product/view"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("product.service",
	fx.Provide(repository.Provide),
	fx.Provide(func(db *gorm.DB, clk clock.Clock) *view.Composer {
		return view.NewComposer(db, clk)
	}),
	fx.Provide(service.New),
)
