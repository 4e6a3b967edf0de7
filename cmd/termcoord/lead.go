package main

import (
	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/termcoord/pkg/dashboard"
)

var leadCmd = &cobra.Command{
	Use:   "lead",
	Short: "Launch the read-only session/conflict/worker dashboard",
	RunE:  runLead,
}

func runLead(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	coord, log, err := buildCoordinator(cfg)
	if err != nil {
		return err
	}
	defer syncLogger(log)

	return dashboard.Run(coord)
}
