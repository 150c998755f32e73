package fixtures

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config describes a fixture: the dataset, its queries and the number of
// ground truth neighbors recorded per query.
type Config struct {
	Size         int
	Dim          int
	Seed         uint64
	Queries      int
	K            int
	Distribution Distribution
	Mean         float64
	StdDev       float64
}

// DefaultConfig holds the values used for keys a config file omits.
// size and dim have no default.
func DefaultConfig() Config {
	return Config{
		K:            10,
		Distribution: Uniform,
		StdDev:       1.0,
	}
}

func (c Config) Generator() DataGenerator {
	return DataGenerator{
		Size:         c.Size,
		Dim:          c.Dim,
		Seed:         c.Seed,
		Distribution: c.Distribution,
		Mean:         float32(c.Mean),
		StdDev:       float32(c.StdDev),
	}
}

/**
* LoadConfig reads a fixture configuration in the following format:
* size = 10000
* dim = 128
* seed = 42
* distribution = normal
* Blank lines and lines starting with # are ignored.
 */
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()
	file, err := os.Open(filename)
	if err != nil {
		return config, fmt.Errorf("failed to open config file %s: %w", filename, err)
	}
	defer file.Close()

	seen := make(map[string]bool)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return config, fmt.Errorf("invalid format on line: %s", line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if seen[key] {
			return config, fmt.Errorf("duplicate parameter in line: %s", line)
		}

		switch key {
		case "size":
			config.Size, err = strconv.Atoi(value)
		case "dim":
			config.Dim, err = strconv.Atoi(value)
		case "seed":
			config.Seed, err = strconv.ParseUint(value, 10, 64)
		case "queries":
			config.Queries, err = strconv.Atoi(value)
		case "k":
			config.K, err = strconv.Atoi(value)
		case "distribution":
			config.Distribution = Distribution(value)
		case "mean":
			config.Mean, err = strconv.ParseFloat(value, 64)
		case "stdDev":
			config.StdDev, err = strconv.ParseFloat(value, 64)
		default:
			return config, fmt.Errorf("unknown parameter in line: %s", line)
		}
		if err != nil {
			return config, fmt.Errorf("invalid %s value in line: %s", key, line)
		}
		seen[key] = true
	}

	if err := scanner.Err(); err != nil {
		return config, fmt.Errorf("error reading config file: %w", err)
	}

	// Verify that all required fields are set
	if !seen["size"] {
		return config, fmt.Errorf("missing required parameter: size")
	}
	if !seen["dim"] {
		return config, fmt.Errorf("missing required parameter: dim")
	}

	return config, config.Validate()
}

func (c Config) Validate() error {
	if err := c.Generator().validate(); err != nil {
		return err
	}
	if c.Queries < 0 {
		return fmt.Errorf("invalid queries %d: must not be negative", c.Queries)
	}
	if c.Queries > 0 && c.K <= 0 {
		return fmt.Errorf("invalid k %d: must be positive when queries are requested", c.K)
	}
	return nil
}

// WriteConfig writes config in the format read by LoadConfig.
func WriteConfig(filename string, config Config) error {
	var b strings.Builder
	fmt.Fprintf(&b, "size = %d\n", config.Size)
	fmt.Fprintf(&b, "dim = %d\n", config.Dim)
	fmt.Fprintf(&b, "seed = %d\n", config.Seed)
	fmt.Fprintf(&b, "queries = %d\n", config.Queries)
	fmt.Fprintf(&b, "k = %d\n", config.K)
	fmt.Fprintf(&b, "distribution = %s\n", config.Distribution)
	fmt.Fprintf(&b, "mean = %s\n", strconv.FormatFloat(config.Mean, 'g', -1, 64))
	fmt.Fprintf(&b, "stdDev = %s\n", strconv.FormatFloat(config.StdDev, 'g', -1, 64))
	return os.WriteFile(filename, []byte(b.String()), 0644)
}
