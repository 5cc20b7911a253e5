package category

import (
	"github.com/rahvarz/bazar/internal/category/repository"
	"github.com/rahvarz/bazar/internal/category/service"
	"go.uber.org/fx"
)

var Module = fx.Module("category.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
