// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// THEME SIZE TESTS
// =============================================================================

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width  int
		height int
	}{
		{80, 24},
		{120, 40},
		{40, 10},
	}

	for _, tc := range tests {
		theme.SetSize(tc.width, tc.height)
		if theme.Width != tc.width || theme.Height != tc.height {
			t.Errorf("SetSize(%d, %d) = %dx%d", tc.width, tc.height, theme.Width, theme.Height)
		}
	}
}

func TestThemeGetLayoutMode(t *testing.T) {
	theme := NewTheme()

	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	for _, tc := range tests {
		theme.SetSize(tc.width, 24)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("GetLayoutMode() with width %d = %v, want %v", tc.width, got, tc.want)
		}
	}
}

func TestThemeInputWidth(t *testing.T) {
	theme := NewTheme()

	theme.SetSize(20, 24)
	if got := theme.InputWidth(); got != 16 {
		t.Errorf("narrow InputWidth() = %d, want 16", got)
	}
	theme.SetSize(50, 24)
	if got := theme.InputWidth(); got != 40 {
		t.Errorf("narrow InputWidth() = %d, want 40", got)
	}
	theme.SetSize(80, 24)
	if got := theme.InputWidth(); got != 44 {
		t.Errorf("medium InputWidth() = %d, want 44", got)
	}
	theme.SetSize(160, 24)
	if got := theme.InputWidth(); got != 56 {
		t.Errorf("wide InputWidth() = %d, want 56", got)
	}
}

func TestApplyMode(t *testing.T) {
	defer lipgloss.SetHasDarkBackground(lipgloss.HasDarkBackground())

	ApplyMode("light")
	if NewTheme().IsDark {
		t.Error("light mode should report a light background")
	}
	if got := Resolve(Rose); got != Rose.Light {
		t.Errorf("Resolve(Rose) in light mode = %s", got)
	}

	ApplyMode("DARK")
	if !NewTheme().IsDark {
		t.Error("dark mode should report a dark background")
	}
	if got := Resolve(Emerald); got != Emerald.Dark {
		t.Errorf("Resolve(Emerald) in dark mode = %s", got)
	}
}

func TestStrengthColorsDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range []lipgloss.AdaptiveColor{StrengthWeak, StrengthMedium, StrengthStrong} {
		if seen[c.Dark] {
			t.Errorf("duplicate strength color %s", c.Dark)
		}
		seen[c.Dark] = true
	}
}

// =============================================================================
// ACCESSIBILITY TESTS
// =============================================================================

func TestRenderHelpersIncludeIndicators(t *testing.T) {
	tests := []struct {
		got       string
		indicator string
	}{
		{RenderSuccess("Registered"), StatusIndicators.Success},
		{RenderError("Server error"), StatusIndicators.Error},
		{RenderWarning("Slow down"), StatusIndicators.Warning},
		{RenderInfo("Sending"), StatusIndicators.Info},
		{RenderStatus(true, "ok"), StatusIndicators.Success},
		{RenderStatus(false, "no"), StatusIndicators.Error},
	}

	for _, tc := range tests {
		if !strings.Contains(tc.got, tc.indicator) {
			t.Errorf("%q should contain %q", tc.got, tc.indicator)
		}
	}
}
