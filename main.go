package main

import (
	"flag"
	"fmt"
	"os"

	"weblarek/cmd"
	"weblarek/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	cmd.NewBuilder(cfg).Build().Run()
}
