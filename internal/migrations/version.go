package migrations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/relasjon/crm/config"
)

// ParseVersion returns the major part of "v2.1" or "2.1"
func ParseVersion(versionStr string) (float64, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(versionStr), "v")
	major, _, _ := strings.Cut(clean, ".")
	value, err := strconv.ParseFloat(major, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version format: %s", versionStr)
	}
	return value, nil
}

// GetCurrentCodeVersion returns the major version from config.VERSION
func GetCurrentCodeVersion() (float64, error) {
	return ParseVersion(config.VERSION)
}
