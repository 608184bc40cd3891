package main

import (
	"github.com/akarpov/bookcrud/internal/config"
	"github.com/akarpov/bookcrud/internal/entrypoint"
)

// Version information - set at build time via ldflags
var Version = "dev"

func main() {
	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
