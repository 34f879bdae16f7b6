// cmd/wbdash/main.go
package main

import (
	"context"
	"log"

	"github.com/dalemusser/waffle/app"
	"github.com/salacoste/wb-erp-system-daytona-FE-sub000/internal/app/bootstrap"
)

func main() {
	// Run blocks until the server stops; the hooks own config, storage and shutdown.
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
