package core

import (
	"fmt"
	"strings"
)

// MeetingKind is the closed set of meeting variants.
type MeetingKind int

const (
	KindNormal MeetingKind = iota
	KindGeneralAssembly
	KindGeneralAssemblyElection
	KindReplacement
	KindUrgent
	KindConstitutive
)

type kindInfo struct {
	slug        string
	titlePrefix string
	filePrefix  string
}

// New variants are added here and nowhere else.
var kindTable = map[MeetingKind]kindInfo{
	KindNormal:                  {slug: "normal", titlePrefix: "Protokoll", filePrefix: ""},
	KindGeneralAssembly:         {slug: "vv", titlePrefix: "VV-Protokoll", filePrefix: "vv-"},
	KindGeneralAssemblyElection: {slug: "wahlvv", titlePrefix: "VV-Protokoll", filePrefix: "vv-"},
	KindReplacement:             {slug: "ersatz", titlePrefix: "Protokoll", filePrefix: ""},
	KindUrgent:                  {slug: "dringlichkeit", titlePrefix: "Protokoll", filePrefix: ""},
	KindConstitutive:            {slug: "konsti", titlePrefix: "Konsti-Protokoll", filePrefix: "konsti-"},
}

func (k MeetingKind) info() kindInfo {
	if info, ok := kindTable[k]; ok {
		return info
	}
	return kindTable[KindNormal]
}

// String returns the wire slug of the kind, e.g. "vv".
func (k MeetingKind) String() string {
	return k.info().slug
}

// TitlePrefix is the document title prefix, e.g. "VV-Protokoll".
func (k MeetingKind) TitlePrefix() string {
	return k.info().titlePrefix
}

// FilePrefix is prepended to "protokoll.md" in the storage path; empty for most kinds.
func (k MeetingKind) FilePrefix() string {
	return k.info().filePrefix
}

// ParseMeetingKind maps a wire slug back to its kind.
func ParseMeetingKind(s string) (MeetingKind, error) {
	slug := strings.ToLower(strings.TrimSpace(s))
	for kind, info := range kindTable {
		if info.slug == slug {
			return kind, nil
		}
	}
	return KindNormal, fmt.Errorf("unknown meeting kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k MeetingKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *MeetingKind) UnmarshalText(text []byte) error {
	kind, err := ParseMeetingKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
