package main

import (
	"context"
	"log"
	"os"

	"github.com/haktiv/evidencekeeper/internal/buildinfo"
	"github.com/haktiv/evidencekeeper/internal/client/cli"
	"github.com/haktiv/evidencekeeper/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
