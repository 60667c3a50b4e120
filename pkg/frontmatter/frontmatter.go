// Package frontmatter recovers the identity of a protokoll (its date and meeting kind) from
// the metadata block at the head of the document.
//
// Both YAML blocks fenced by "---" and TOML blocks fenced by "+++" are understood:
//
//	---
//	date: 2022-05-27T18:30:00+02:00
//	sitzung-kind: vv
//	---
//
// The rest of the system only sees Metadata; the generic trees the decoders produce never
// leave this package.
package frontmatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/fscs/prototool/pkg/core"
)

const (
	yamlFence = "---"
	tomlFence = "+++"

	keyDate    = "date"
	keyLastMod = "lastmod"
	keyKind    = "sitzung-kind"
)

// Metadata is the part of the frontmatter the system cares about.
// Date and LastMod hold calendar dates at midnight UTC.
type Metadata struct {
	Date    *time.Time
	LastMod *time.Time
	// Kind is KindNormal when the key is absent or holds an unknown slug.
	Kind core.MeetingKind
}

// ProtokollDate prefers date over lastmod.
func (m Metadata) ProtokollDate() (time.Time, error) {
	switch {
	case m.Date != nil:
		return *m.Date, nil
	case m.LastMod != nil:
		return *m.LastMod, nil
	default:
		return time.Time{}, core.ErrDateMissing
	}
}

// Recovered identifies where an imported document belongs.
type Recovered struct {
	Date time.Time
	Kind core.MeetingKind
}

// Path is the storage path of the document relative to the content directory.
func (r Recovered) Path() string {
	return core.DocumentPath(r.Date, r.Kind)
}

// Recover parses text and resolves its protokoll date.
func Recover(text string) (Recovered, error) {
	meta, err := Parse(text)
	if err != nil {
		return Recovered{}, err
	}

	date, err := meta.ProtokollDate()
	if err != nil {
		return Recovered{}, err
	}

	return Recovered{Date: date, Kind: meta.Kind}, nil
}

// Parse extracts the metadata block at the head of text. Blank lines and a byte order mark
// before the opening fence are tolerated; anything else means there is no frontmatter.
func Parse(text string) (Metadata, error) {
	fence, block, err := split(text)
	if err != nil {
		return Metadata{}, err
	}

	raw := map[string]any{}
	switch fence {
	case yamlFence:
		if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
			return Metadata{}, fmt.Errorf("%w: %w", core.ErrFrontmatterMalformed, err)
		}
	case tomlFence:
		if _, err := toml.Decode(block, &raw); err != nil {
			return Metadata{}, fmt.Errorf("%w: %w", core.ErrFrontmatterMalformed, err)
		}
	}

	var meta Metadata
	if meta.Date, err = dateValue(raw, keyDate); err != nil {
		return Metadata{}, err
	}
	if meta.LastMod, err = dateValue(raw, keyLastMod); err != nil {
		return Metadata{}, err
	}

	if s, ok := raw[keyKind].(string); ok {
		if kind, err := core.ParseMeetingKind(s); err == nil {
			meta.Kind = kind
		}
	}

	return meta, nil
}

func split(text string) (fence string, block string, err error) {
	text = strings.TrimPrefix(text, "\uFEFF")

	var lines []string
	opened := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")

		if !opened {
			switch line {
			case "":
				continue
			case yamlFence, tomlFence:
				fence, opened = line, true
				continue
			default:
				return "", "", core.ErrFrontmatterMissing
			}
		}

		if line == fence {
			return fence, strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}

	if !opened {
		return "", "", core.ErrFrontmatterMissing
	}
	return "", "", fmt.Errorf("%w: no closing %q", core.ErrFrontmatterMalformed, fence)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// dateValue reads key as a calendar date. Strings and native date values are accepted;
// the calendar date is the one written in the document, whatever its offset.
func dateValue(raw map[string]any, key string) (*time.Time, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, nil
	}

	var t time.Time
	switch val := v.(type) {
	case time.Time:
		t = val
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil, nil
		}
		parsed, err := parseDate(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", core.ErrFrontmatterMalformed, key, err)
		}
		t = parsed
	default:
		return nil, fmt.Errorf("%w: %s has unexpected type %T", core.ErrFrontmatterMalformed, key, v)
	}

	y, m, d := t.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &date, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
