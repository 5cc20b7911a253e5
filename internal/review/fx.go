package review

import (
	"github.com/rahvarz/bazar/internal/review/repository"
	"github.com/rahvarz/bazar/internal/review/service"
	"go.uber.org/fx"
)

var Module = fx.Module("review.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
