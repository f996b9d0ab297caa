package main

import (
	"flag"
	"log"

	"github.com/danmuck/installctl/internal/config"
)

const defaultConfigPath = "cmd/installctl/config.toml"

func main() {
	output := flag.String("output", defaultConfigPath, "output path for config template")
	validate := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", defaultConfigPath, "config path for validation")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *validate {
		cfg, err := config.Load(*input)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated config at %s (listen_addr=%s work_dir=%s)", *input, cfg.ListenAddr, cfg.WorkDir)
		return
	}

	if err := config.WriteTemplate(*output, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote installctl config template to %s", *output)
}
