package diorama

import (
	"fmt"
	"os"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Prefs are the user toggles persisted between sessions.
type Prefs struct {
	NightMode bool `yaml:"night_mode"`
	Muted     bool `yaml:"muted"`
}

const (
	prefsObject   = "prefs"
	prefsProperty = "room"
)

// PrefsStore persists Prefs through gdata. A store without a manager keeps
// prefs in memory only.
type PrefsStore struct {
	manager *gdata.Manager
	prefs   Prefs
}

// OpenPrefs opens the platform data directory for appName. When the
// directory cannot be opened, the returned store is memory only and err
// describes why.
func OpenPrefs(appName string) (*PrefsStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewPrefsStore(nil), fmt.Errorf("open prefs: %w", err)
	}
	return NewPrefsStore(m), nil
}

// NewPrefsStore wraps an open gdata manager. m may be nil.
func NewPrefsStore(m *gdata.Manager) *PrefsStore {
	return &PrefsStore{manager: m}
}

// Persistent reports whether the store writes to disk.
func (ps *PrefsStore) Persistent() bool {
	return ps.manager != nil
}

// Prefs returns the last loaded or saved prefs.
func (ps *PrefsStore) Prefs() Prefs {
	return ps.prefs
}

// Load reads the saved prefs. A missing entry leaves the zero Prefs and is
// not an error.
func (ps *PrefsStore) Load() (Prefs, error) {
	if ps.manager == nil || !ps.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return ps.prefs, nil
	}
	data, err := ps.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return ps.prefs, fmt.Errorf("load prefs: %w", err)
	}
	var p Prefs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return ps.prefs, fmt.Errorf("decode prefs: %w", err)
	}
	ps.prefs = p
	return p, nil
}

// Save stores p. Without a manager only the in-memory copy changes.
func (ps *PrefsStore) Save(p Prefs) error {
	ps.prefs = p
	if ps.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := ps.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

// SetPrefs attaches a prefs store. Saved prefs are applied on Ready, and
// every theme or mute toggle is written back.
func (s *Scene) SetPrefs(ps *PrefsStore) {
	s.prefs = ps
}

// restorePrefs applies saved prefs without animation or events.
func (s *Scene) restorePrefs() {
	if s.prefs == nil {
		return
	}
	p, err := s.prefs.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[diorama] %v (using defaults)\n", err)
	}
	s.theme.muted = p.Muted
	s.theme.night = p.NightMode
	s.applyTheme(false)
}

func (s *Scene) savePrefs() {
	if s.prefs == nil {
		return
	}
	err := s.prefs.Save(Prefs{NightMode: s.theme.night, Muted: s.theme.muted})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[diorama] %v\n", err)
	}
}
