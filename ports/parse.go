// Package ports expands port specification strings into explicit port lists.
package ports

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Parse expands a port specification and returns the ports sorted ascending.
// Supported forms:
//   - single: "22"
//   - list: "22,80,443"
//   - range: "1-1024"
//   - mixed: "22,80,8000-8100"
//
// Multiplicity is preserved: "1-3,2" yields [1 2 2 3]. Duplicate ports in
// the input are scanned more than once, which is accepted behavior.
func Parse(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, errors.New("empty port spec")
	}
	var out []int
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, errors.New("empty token in port spec")
		}
		if strings.Contains(token, "-") {
			bounds := strings.SplitN(token, "-", 2)
			start, err := parsePort(bounds[0])
			if err != nil {
				return nil, err
			}
			end, err := parsePort(bounds[1])
			if err != nil {
				return nil, err
			}
			if start > end {
				return nil, fmt.Errorf("range start greater than end: %s", token)
			}
			for p := start; p <= end; p++ {
				out = append(out, p)
			}
		} else {
			p, err := parsePort(token)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out, nil
}

func parsePort(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", s)
	}
	if v < 1 || v > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", v)
	}
	return v, nil
}
