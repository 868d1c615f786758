package tokens

import "github.com/jmylchreest/oltre/internal/colour"

// auditPairs are the foreground/background roles checked in every mode.
var auditPairs = [][2]string{
	{"text", "background"},
	{"text", "surface"},
	{"text-muted", "background"},
	{"text-muted", "surface"},
	{colour.NamePrimary, "background"},
	{colour.NameAccent, "background"},
}

// AuditEntry is the contrast of one role pair in one mode.
type AuditEntry struct {
	Mode       Mode   `json:"mode"`
	Foreground string `json:"foreground"`
	Background string `json:"background"`
	FgHex      string `json:"foreground_hex"`
	BgHex      string `json:"background_hex"`
	colour.ContrastReport
}

// Audit checks text and brand colours against their backgrounds in light
// mode and, when enabled, dark mode.
func (s *Set) Audit() []AuditEntry {
	modes := []Mode{ModeLight}
	if s.DarkMode {
		modes = append(modes, ModeDark)
	}

	var out []AuditEntry
	for _, m := range modes {
		for _, pair := range auditPairs {
			fg, ok := s.Resolve(pair[0], m)
			if !ok {
				continue
			}
			bg, ok := s.Resolve(pair[1], m)
			if !ok {
				continue
			}
			out = append(out, AuditEntry{
				Mode:           m,
				Foreground:     pair[0],
				Background:     pair[1],
				FgHex:          fg.Hex(),
				BgHex:          bg.Hex(),
				ContrastReport: colour.CheckContrast(fg, bg),
			})
		}
	}
	return out
}

// Failures returns the entries that do not reach AA for normal text.
func Failures(entries []AuditEntry) []AuditEntry {
	var out []AuditEntry
	for _, e := range entries {
		if !e.AA {
			out = append(out, e)
		}
	}
	return out
}
