package main

import (
	"context"
	"log"
	"os"

	"github.com/welovepdf/pdfconv/internal/buildinfo"
	"github.com/welovepdf/pdfconv/internal/cli"
	"github.com/welovepdf/pdfconv/internal/config"
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
