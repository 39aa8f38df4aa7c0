package main

import (
	"fmt"
	"os"

	"github.com/SAP-F-2025/participation-service/internal/cli"
	"github.com/SAP-F-2025/participation-service/internal/config"
)

func main() {
	if err := cli.NewRootCmd(config.LoadConfig).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
