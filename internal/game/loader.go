package game

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var separatorRe = regexp.MustCompile(`^-{3,}[ \t]*$`)

// LoadSymbols reads tile faces from a list of paths (files or directories).
// Each non-blank line is one symbol; lines starting with '#' and separator
// lines of three or more dashes are skipped. Order is kept so the first
// symbols are dealt first.
func LoadSymbols(paths []string) ([]string, error) {
	var symbols []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access path %s: %w", path, err)
		}

		if info.IsDir() {
			files, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read dir %s: %w", path, err)
			}
			for _, entry := range files {
				if entry.IsDir() {
					continue
				}
				s, err := loadFile(filepath.Join(path, entry.Name()))
				if err != nil {
					return nil, err
				}
				symbols = append(symbols, s...)
			}
			continue
		}

		s, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, s...)
	}

	return symbols, nil
}

func loadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	var symbols []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || separatorRe.MatchString(line) {
			continue
		}
		symbols = append(symbols, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan file %s: %w", path, err)
	}

	return symbols, nil
}
