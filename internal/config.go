package internal

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
)

const envPrefix = "FILTERS_"

type Config struct {
	Workers        int
	MaxUploadBytes int64
	FrameDelay     float64
}

func DefaultConfig() Config {
	return Config{
		Workers:        1,
		MaxUploadBytes: 32 << 20,
		FrameDelay:     1.0,
	}
}

// LoadConfig reads FILTERS_* settings from the environment, falling back to
// the defaults for anything unset.
func LoadConfig() (Config, error) {
	return loadConfig(os.Getenv)
}

func loadConfig(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()

	if v := getenv(envPrefix + "WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("%sWORKERS must be a positive integer, got %q", envPrefix, v)
		}
		cfg.Workers = n
	}

	if v := getenv(envPrefix + "MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("%sMAX_UPLOAD_BYTES must be a positive integer, got %q", envPrefix, v)
		}
		cfg.MaxUploadBytes = n
	}

	if v := getenv(envPrefix + "FRAME_DELAY"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil || d <= 0 || d > 60 {
			return cfg, fmt.Errorf("%sFRAME_DELAY must be between 0 and 60 seconds, got %q", envPrefix, v)
		}
		cfg.FrameDelay = d
	}

	return cfg, nil
}

func ShowVersion() {
	log.Printf("Version: %s\n", versioninfo.Short())
}

var sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

// EnvironmentVars logs the FILTERS_* settings, masking anything that looks
// like a credential.
func EnvironmentVars() {
	log.Println("Environment variables")
	for _, line := range filterEnviron(os.Environ()) {
		log.Printf("  %s\n", line)
	}
}

func filterEnviron(environ []string) []string {
	lines := make([]string, 0)
	for _, entry := range environ {
		kv := strings.SplitN(entry, "=", 2)
		if !strings.HasPrefix(kv[0], envPrefix) || len(kv) != 2 {
			continue
		}
		if sensitiveRegex.MatchString(kv[0]) {
			lines = append(lines, fmt.Sprintf("%s: ********", kv[0]))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %s", kv[0], kv[1]))
		}
	}
	sort.Strings(lines)
	return lines
}
