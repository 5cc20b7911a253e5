package auth

import (
	"github.com/rahvarz/bazar/internal/auth/repository"
	"github.com/rahvarz/bazar/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
