// Package deps reads the user-maintained dependency side file.
package deps

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Read returns the dependency specifiers listed in the side file at path, one
// per line, source order preserved. Blank lines and lines starting with '#'
// are skipped. No deduplication, sorting, or specifier validation happens
// here; specifiers pass through exactly as written.
func Read(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dependency file: %w", err)
	}
	defer file.Close()

	var specifiers []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		specifiers = append(specifiers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dependency file: %w", err)
	}
	return specifiers, nil
}
