package study

import (
	"fmt"
	"strings"

	"studymate/internal/store"
)

// DefaultUsername is used until the user picks a name.
const DefaultUsername = "Student"

func (r *Repository) getScalar(key string) string {
	v, _, _ := r.store.Get(key)
	return v
}

func (r *Repository) setScalar(key, value string) error {
	if err := r.store.Set(key, value); err != nil {
		return err
	}
	r.gen++
	return nil
}

// Username returns the stored display name, defaulting to "Student".
func (r *Repository) Username() string {
	if v := r.getScalar(store.KeyUsername); v != "" {
		return v
	}
	return DefaultUsername
}

// HasUsername reports whether a name was ever stored; it drives the
// first-run prompt.
func (r *Repository) HasUsername() bool {
	_, ok, _ := r.store.Get(store.KeyUsername)
	return ok
}

func (r *Repository) SetUsername(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultUsername
	}
	return r.setScalar(store.KeyUsername, name)
}

// LastSession returns the display string of the most recently finalized
// timer session, or "-" when none has been recorded.
func (r *Repository) LastSession() string {
	if v := r.getScalar(store.KeyLastSession); v != "" {
		return v
	}
	return "-"
}

func (r *Repository) setLastSession(display string) error {
	return r.setScalar(store.KeyLastSession, display)
}

// ActivePage remembers the last view the user was on.
func (r *Repository) ActivePage() string {
	return r.getScalar(store.KeyActivePage)
}

func (r *Repository) SetActivePage(page string) error {
	return r.setScalar(store.KeyActivePage, page)
}

// ThemeName returns the selected theme color name, defaulting to blue.
func (r *Repository) ThemeName() string {
	if v := r.getScalar(store.KeyThemeName); ValidColor(v) {
		return v
	}
	return DefaultColor
}

func (r *Repository) SetThemeName(name string) error {
	if !ValidColor(name) {
		return fmt.Errorf("%w: unknown theme %q", ErrValidation, name)
	}
	return r.setScalar(store.KeyThemeName, name)
}

// ThemeAccent resolves the current theme to its accent hex and derived
// shadow color.
func (r *Repository) ThemeAccent() (hex, shadow string) {
	hex = AccentHex(r.ThemeName())
	return hex, ShadowFor(hex)
}

func (r *Repository) DarkMode() bool {
	return r.getScalar(store.KeyDarkMode) == "dark"
}

func (r *Repository) SetDarkMode(on bool) error {
	v := "light"
	if on {
		v = "dark"
	}
	return r.setScalar(store.KeyDarkMode, v)
}
