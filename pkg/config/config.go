// Machine configuration for the FluidCNC Go migration
//
// Parses an INI-style config file describing the machine's axes and
// planner tuning, validates it, and produces the read-only Axes snapshot
// the motion planner consumes.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package config

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"fluidcnc-go-migration/pkg/errors"
)

// Config is a parsed config file: a set of named sections.
type Config struct {
	sections map[string]*Section
	order    []string
}

// Parse reads an INI-style config from r. Lines are `key: value` or
// `key = value`; `#` and `;` start comments; `[name]` starts a section.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{sections: make(map[string]*Section)}

	var current *Section
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if idx := strings.IndexAny(line, "#;"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, errors.New(errors.ErrConfigSection,
					"unterminated section header at line "+strconv.Itoa(lineNo))
			}
			name := strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			if name == "" {
				return nil, errors.New(errors.ErrConfigSection,
					"empty section name at line "+strconv.Itoa(lineNo))
			}
			current = cfg.section(name)
			continue
		}

		sep := strings.IndexAny(line, ":=")
		if sep < 0 {
			return nil, errors.New(errors.ErrConfigOption,
				"expected 'key: value' at line "+strconv.Itoa(lineNo))
		}
		if current == nil {
			return nil, errors.New(errors.ErrConfigOption,
				"option before any section at line "+strconv.Itoa(lineNo))
		}
		key := strings.ToLower(strings.TrimSpace(line[:sep]))
		value := strings.TrimSpace(line[sep+1:])
		current.options[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigSection, "read config")
	}
	return cfg, nil
}

// ParseFile reads and parses the config file at path.
func ParseFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigSection, "open config file")
	}
	defer f.Close()
	return Parse(f)
}

func (c *Config) section(name string) *Section {
	if s, ok := c.sections[name]; ok {
		return s
	}
	s := newSection(name, nil)
	c.sections[name] = s
	c.order = append(c.order, name)
	return s
}

// HasSection reports whether the named section exists.
func (c *Config) HasSection(name string) bool {
	_, ok := c.sections[strings.ToLower(name)]
	return ok
}

// GetSection returns the named section.
func (c *Config) GetSection(name string) (*Section, error) {
	s, ok := c.sections[strings.ToLower(name)]
	if !ok {
		return nil, errors.ConfigSectionError(name)
	}
	return s, nil
}

// SectionNames returns all section names in file order.
func (c *Config) SectionNames() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
