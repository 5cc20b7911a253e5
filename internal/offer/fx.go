package offer

import (
	"github.com/rahvarz/bazar/internal/offer/repository"
	"github.com/rahvarz/bazar/internal/offer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("offer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
