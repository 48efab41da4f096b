package main

import (
	"flag"
	"fmt"
	"gatewatch/internal/di"
	"gatewatch/internal/structures"
	"os"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the yaml config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "duplicate logs to the console")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "gatewatch: %s\n", err)
		os.Exit(1)
	}
}
