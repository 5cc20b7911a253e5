package expression

import (
	"github.com/rahvarz/bazar/internal/expression/repository"
	"github.com/rahvarz/bazar/internal/expression/service"
	"go.uber.org/fx"
)

var Module = fx.Module("expression.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
