// ABOUTME: Build constraint file pinning the Charm TUI libraries in go.mod
// ABOUTME: Never compiled into the binary

//go:build tools

package tools

import (
	_ "github.com/charmbracelet/bubbles"
	_ "github.com/charmbracelet/bubbletea"
	_ "github.com/charmbracelet/huh"
	_ "github.com/charmbracelet/lipgloss"
)
