package config

import (
	"os"
	"strings"
)

// version is set at build time with -ldflags "-X resupplycharts/internal/config.version=..."
var version string

// GetVersion returns the build version, then APP_VERSION, then the VERSION
// file in the working directory
func GetVersion() string {
	if version != "" {
		return version
	}
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}
	if content, err := os.ReadFile("VERSION"); err == nil {
		if v := strings.TrimSpace(string(content)); v != "" {
			return v
		}
	}
	return "0.1.0-dev"
}
