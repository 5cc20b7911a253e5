package warehouse

import (
	"github.com/rahvarz/bazar/internal/warehouse/repository"
	"github.com/rahvarz/bazar/internal/warehouse/service"
	"go.uber.org/fx"
)

var Module = fx.Module("warehouse.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
