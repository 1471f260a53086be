package cli

import (
	"fmt"
	"strings"

	"github.com/morozRed/scratch/internal/scratch"
	"github.com/spf13/cobra"
)

func OptionalStringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return strings.TrimSpace(value), nil
}

func OptionalBoolFlag(cmd *cobra.Command, name string, defaultValue bool) (bool, error) {
	if cmd == nil || cmd.Flags().Lookup(name) == nil {
		return defaultValue, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to read --%s flag: %w", name, err)
	}
	return value, nil
}

// ParseShift maps "up" and "down" to a list shift.
func ParseShift(value string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "up":
		return scratch.Up, nil
	case "down":
		return scratch.Down, nil
	default:
		return 0, fmt.Errorf("unsupported direction %q (supported: up, down)", value)
	}
}

// ParseSwitch accepts on/off style values.
func ParseSwitch(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("unsupported value %q (supported: on, off)", value)
	}
}
