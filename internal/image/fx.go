package image

import (
	"github.com/rahvarz/bazar/internal/image/repository"
	"github.com/rahvarz/bazar/internal/image/service"
	"go.uber.org/fx"
)

var Module = fx.Module("image.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
