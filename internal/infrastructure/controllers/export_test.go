package controllers

import "github.com/rios0rios0/npmpick/internal/domain/commands"

// NewUpgradeControllerWith creates an UpgradeController with injected terminal detection.
func NewUpgradeControllerWith(command commands.Upgrade, isTerminal func() bool) *UpgradeController {
	return &UpgradeController{command: command, isTerminal: isTerminal}
}
