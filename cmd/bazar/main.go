package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/rahvarz/bazar/internal/clock"
	"github.com/rahvarz/bazar/internal/config"
	"github.com/rahvarz/bazar/internal/logger"
	"github.com/rahvarz/bazar/internal/migration"
	"github.com/rahvarz/bazar/internal/server"
	"github.com/rahvarz/bazar/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
