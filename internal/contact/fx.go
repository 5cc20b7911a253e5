package contact

import (
	"github.com/rahvarz/bazar/internal/contact/repository"
	"github.com/rahvarz/bazar/internal/contact/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contact.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
