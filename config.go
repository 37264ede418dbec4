package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"stickerpad/designer"
	"stickerpad/history"
	"stickerpad/viewport"
)

const configFileName = ".stickerpadrc"

type Config struct {
	SaveDirectory   string  `yaml:"saveDirectory"`
	StartMenu       bool    `yaml:"startMenu"`
	Confirmations   bool    `yaml:"confirmations"`
	PageWidthMm     float64 `yaml:"pageWidthMm"`
	PageHeightMm    float64 `yaml:"pageHeightMm"`
	GridSpacingMm   float64 `yaml:"gridSpacingMm"`
	SnapToGrid      bool    `yaml:"snapToGrid"`
	HistorySteps    int     `yaml:"historySteps"`
	SystemClipboard bool    `yaml:"systemClipboard"`
}

func defaultConfig() *Config {
	return &Config{
		StartMenu:       true,
		Confirmations:   true,
		PageWidthMm:     designer.DefaultPageWidth,
		PageHeightMm:    designer.DefaultPageHeight,
		GridSpacingMm:   viewport.DefaultGridSpacing,
		SnapToGrid:      true,
		HistorySteps:    history.DefaultSteps,
		SystemClipboard: true,
	}
}

// loadConfig reads the YAML config at path, or ~/.stickerpadrc when path is
// empty. A missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if path == "" {
		if err != nil {
			return config, nil
		}
		path = filepath.Join(homeDir, configFileName)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if value := config.SaveDirectory; value != "" {
		if strings.HasPrefix(value, "~") && homeDir != "" {
			value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
		}
		if !filepath.IsAbs(value) {
			if absPath, err := filepath.Abs(value); err == nil {
				value = absPath
			}
		}
		config.SaveDirectory = value
	}
	if config.PageWidthMm <= 0 || config.PageHeightMm <= 0 {
		return nil, fmt.Errorf("config %s: page size %vx%v must be positive", path, config.PageWidthMm, config.PageHeightMm)
	}
	if config.GridSpacingMm <= 0 {
		config.GridSpacingMm = viewport.DefaultGridSpacing
	}
	return config, nil
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// parsePageSize reads a WIDTHxHEIGHT size in millimeters, e.g. "100x50".
func parsePageSize(s string) (float64, float64, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("page size %q: want WIDTHxHEIGHT", s)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("page width %q: %w", w, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("page height %q: %w", h, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("page size %q must be positive", s)
	}
	return width, height, nil
}
