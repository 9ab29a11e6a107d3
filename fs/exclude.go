package fs

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ReadPartNumbers loads an exclusion list.
//
// Two formats are accepted: a JSON array of records as written by
// JSONWriter, or plain text with part numbers separated by newlines or
// commas. Blank lines and lines starting with # are ignored.
func ReadPartNumbers(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read exclusion list: %w", err)
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var records []struct {
			PartNumber string `json:"part_number"`
		}
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("parse exclusion list %s: %w", path, err)
		}
		out := make([]string, 0, len(records))
		for _, r := range records {
			if pn := strings.TrimSpace(r.PartNumber); pn != "" {
				out = append(out, pn)
			}
		}
		return out, nil
	}

	var out []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Split(line, ",") {
			if pn := strings.Trim(strings.TrimSpace(field), `"'`); pn != "" {
				out = append(out, pn)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read exclusion list: %w", err)
	}
	return out, nil
}
