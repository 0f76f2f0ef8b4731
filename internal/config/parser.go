package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	// Context for parsing
	var currentSection string
	var currentTheme *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// Handle Sections
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			currentTheme = nil

			if strings.HasPrefix(currentSection, "theme.") {
				themeName := strings.TrimPrefix(currentSection, "theme.")
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Parse Key = Value or Key: Value
		var parts []string
		if strings.Contains(line, "=") {
			parts = strings.SplitN(line, "=", 2)
		} else if strings.Contains(line, ":") {
			parts = strings.SplitN(line, ":", 2)
		} else {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove quotes if present
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = theme.SetField(currentTheme, key, value)
		case currentSection == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "shape":
			err = setShapeField(&cfg.Shape, key, value)
		case currentSection == "export":
			err = setExportField(&cfg.Export, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			name := currentSection
			if name == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", name, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir":
		cfg.SaveDir = value
	case "color":
		cfg.Color, err = theme.ParseColor(value)
	case "background":
		cfg.Background, err = theme.ParseColor(value)
	case "width":
		cfg.Width, err = parsePositive(value)
	case "tolerance":
		cfg.Tolerance, err = strconv.Atoi(value)
	case "history":
		cfg.History, err = strconv.Atoi(value)
	case "brush_style":
		cfg.BrushStyle = strings.ToLower(value)
	case "canvas_width":
		cfg.CanvasW, err = strconv.Atoi(value)
	case "canvas_height":
		cfg.CanvasH, err = strconv.Atoi(value)
	}
	if err != nil {
		return fmt.Errorf("invalid value for key %s: %w", key, err)
	}
	return nil
}

func setShapeField(s *Shape, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "handle_size":
		s.HandleSize, err = parsePositive(value)
	case "hit_area":
		s.HitArea, err = parsePositive(value)
	}
	if err != nil {
		return fmt.Errorf("invalid value for key %s: %w", key, err)
	}
	return nil
}

func setExportField(e *Export, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "format":
		e.Format = strings.ToLower(value)
	case "quality":
		e.Quality, err = strconv.Atoi(value)
	case "dpi":
		e.DPI, err = parsePositive(value)
	case "transparency":
		e.Transparency, err = strconv.ParseBool(value)
	}
	if err != nil {
		return fmt.Errorf("invalid value for key %s: %w", key, err)
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	}
	return nil
}

func parsePositive(value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, fmt.Errorf("must be positive, got %g", f)
	}
	return f, nil
}
