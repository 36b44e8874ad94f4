package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/shineypaint/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var currentSection string
	var currentTheme *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentSection = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			currentTheme = nil

			if themeName, ok := strings.CutPrefix(currentSection, "theme."); ok {
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = themeName
				cfg.Themes[themeName] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
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
		if strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") && len(value) >= 2 {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = currentTheme.Set(key, value)
		case strings.EqualFold(currentSection, "tools"):
			err = setToolsField(&cfg.Tools, key, value)
		case strings.EqualFold(currentSection, "notify"):
			err = setNotifyField(&cfg.Notify, key, value)
		case currentSection == "":
			err = setRootField(cfg, key, value)
		}
		if err != nil {
			section := currentSection
			if section == "" {
				section = "root"
			}
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, section, err)
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
	case "width":
		cfg.Width, err = parseSize(key, value)
	case "height":
		cfg.Height, err = parseSize(key, value)
	case "background":
		cfg.Background, err = theme.ParseColor(value)
	case "color":
		cfg.Color, err = theme.ParseColor(value)
	case "history_limit":
		cfg.HistoryLimit, err = parseNonNegative(key, value)
	case "pick_revert":
		cfg.PickRevert, err = parseBool(key, value)
	}
	return err
}

func setToolsField(t *Tools, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "draw_width":
		t.DrawWidth, err = parseNonNegative(key, value)
	case "erase_width":
		t.EraseWidth, err = parseNonNegative(key, value)
	case "shape_width":
		t.ShapeWidth, err = parseNonNegative(key, value)
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := parseBool(key, value)
	if err != nil {
		return err
	}
	switch strings.ToLower(key) {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	case "pick":
		n.Pick = b
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

func parseNonNegative(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("key %s must not be negative", key)
	}
	return n, nil
}

func parseSize(key, value string) (int, error) {
	n, err := parseNonNegative(key, value)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("key %s must be positive", key)
	}
	return n, nil
}
