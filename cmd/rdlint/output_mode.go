package main

import (
	"fmt"
	"os"
	"strings"

	"rdlint/internal/diagfmt"
)

// resolveColor maps the --color flag (with the manifest value as fallback)
// to a concrete on/off decision.
func resolveColor(flagValue, configValue string) (bool, error) {
	mode := strings.TrimSpace(strings.ToLower(flagValue))
	if mode == "" || mode == "auto" {
		if configValue != "" {
			mode = configValue
		}
	}
	switch mode {
	case "", "auto":
		return isTerminal(os.Stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", flagValue)
	}
}

type progressMode string

const (
	progressAuto progressMode = "auto"
	progressOn   progressMode = "on"
	progressOff  progressMode = "off"
)

func readProgressMode(value string) (progressMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressOn, nil
	case "off":
		return progressOff, nil
	default:
		return "", fmt.Errorf("invalid --progress value %q (expected auto|on|off)", value)
	}
}

func shouldShowProgress(mode progressMode, format string) bool {
	if format != "pretty" && format != "short" {
		// Машинные форматы не смешиваем с интерактивным выводом.
		return false
	}
	switch mode {
	case progressOn:
		return true
	case progressOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

func pathModeFor(fullPath bool) diagfmt.PathMode {
	if fullPath {
		return diagfmt.PathModeAbsolute
	}
	return diagfmt.PathModeRelative
}
