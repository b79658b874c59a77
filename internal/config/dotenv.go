package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// loadDotEnv copies KEY=VALUE pairs from a dotenv file into the process
// environment and returns the keys it set. A missing file is not an error.
//
//   - Blank lines and # comments are skipped, as is a trailing " #" comment
//     after an unquoted value.
//   - "export KEY=VALUE" is accepted.
//   - Matching single or double quotes around a value are removed.
//   - Variables already set in the environment win.
func loadDotEnv(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open dotenv file: %w", err)
	}
	defer f.Close()

	var set []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		k, v, ok := parseDotEnvLine(sc.Text())
		if !ok || os.Getenv(k) != "" {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return set, fmt.Errorf("set %s: %w", k, err)
		}
		set = append(set, k)
	}
	if err := sc.Err(); err != nil {
		return set, fmt.Errorf("read dotenv file: %w", err)
	}
	return set, nil
}

func parseDotEnvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, value, ok = strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", false
	}
	value = strings.TrimSpace(value)

	if n := len(value); n >= 2 && (value[0] == '"' || value[0] == '\'') && value[n-1] == value[0] {
		return key, value[1 : n-1], true
	}
	if i := strings.Index(value, " #"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	return key, value, true
}
