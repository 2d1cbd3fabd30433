package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hupe1980/seedscan"
)

// parseClause parses the flag form of a clause:
//
//	TYPE:VALUE[|VALUE...][@ANTES][#SCORE]
//
// ANTES is a comma separated list of antes or ranges ("1,3-5"). SCORE is
// the SHOULD weight. A missing VALUE means "Any".
func parseClause(s string) (seedscan.Clause, error) {
	var c seedscan.Clause
	rest := strings.TrimSpace(s)

	if i := strings.LastIndexByte(rest, '#'); i >= 0 {
		score, err := strconv.Atoi(strings.TrimSpace(rest[i+1:]))
		if err != nil {
			return c, fmt.Errorf("clause %q: score: %w", s, err)
		}
		c.Score = score
		rest = rest[:i]
	}
	if i := strings.LastIndexByte(rest, '@'); i >= 0 {
		antes, err := parseAntes(rest[i+1:])
		if err != nil {
			return c, fmt.Errorf("clause %q: %w", s, err)
		}
		c.Antes = antes
		rest = rest[:i]
	}

	typ, values, _ := strings.Cut(rest, ":")
	c.Type = strings.TrimSpace(typ)
	if c.Type == "" {
		return c, fmt.Errorf("clause %q: missing type", s)
	}
	for _, v := range strings.Split(values, "|") {
		if v = strings.TrimSpace(v); v != "" {
			c.Values = append(c.Values, v)
		}
	}
	switch len(c.Values) {
	case 0:
		c.Value = "Any"
	case 1:
		c.Value, c.Values = c.Values[0], nil
	}
	return c, nil
}

func parseAntes(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		a, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("ante %q: %w", part, err)
		}
		b := a
		if isRange {
			if b, err = strconv.Atoi(hi); err != nil {
				return nil, fmt.Errorf("ante %q: %w", part, err)
			}
		}
		if b < a {
			return nil, fmt.Errorf("ante range %q is empty", part)
		}
		for x := a; x <= b; x++ {
			out = append(out, x)
		}
	}
	return out, nil
}

func parseClauses(flags []string) ([]seedscan.Clause, error) {
	out := make([]seedscan.Clause, 0, len(flags))
	for _, f := range flags {
		c, err := parseClause(f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
