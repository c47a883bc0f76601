package chatwoot

import (
	"fmt"
	"strings"
)

// Preset consolidates the historical installer variants. They differ only in
// prompt behaviour, default domain, uninstall confirmation token, and whether
// mail-relay placeholder keys are written to the environment file.
type Preset struct {
	Name string

	// DefaultDomain is offered when the operator presses enter. Empty
	// means the domain is required and the prompt repeats until answered.
	DefaultDomain string

	// StrictConfirm requires the literal, case-sensitive token "yes" to
	// confirm uninstall. Otherwise y/yes in any case is accepted.
	StrictConfirm bool

	// MailPlaceholders adds empty SMTP relay keys to the environment file.
	MailPlaceholders bool
}

var (
	// PresetStandard accepts a default domain and a lenient confirmation.
	PresetStandard = &Preset{
		Name:          "standard",
		DefaultDomain: "chatwoot.example.com",
	}

	// PresetStrict requires a real domain up front and the literal token
	// "yes" to uninstall.
	PresetStrict = &Preset{
		Name:          "strict",
		StrictConfirm: true,
	}

	// PresetFull is standard plus mail-relay placeholder configuration.
	PresetFull = &Preset{
		Name:             "full",
		DefaultDomain:    "chatwoot.example.com",
		MailPlaceholders: true,
	}
)

// Presets indexes the named presets.
var Presets = map[string]*Preset{
	PresetStandard.Name: PresetStandard,
	PresetStrict.Name:   PresetStrict,
	PresetFull.Name:     PresetFull,
}

// LookupPreset resolves a preset by name.
func LookupPreset(name string) (*Preset, error) {
	if name == "" {
		return PresetStandard, nil
	}
	p, ok := Presets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q (available: standard, strict, full)", name)
	}
	return p, nil
}

// ConfirmsUninstall reports whether the operator input authorizes teardown.
func (p *Preset) ConfirmsUninstall(input string) bool {
	if p.StrictConfirm {
		return input == "yes"
	}
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}
	return false
}

// ConfirmHint is shown in the uninstall confirmation prompt.
func (p *Preset) ConfirmHint() string {
	if p.StrictConfirm {
		return "type 'yes' to confirm"
	}
	return "y/N"
}
