package preferences

// Settings defines editable display preferences. Stage durations are not
// here; they live with the presets in the key-value store.
type Settings struct {
	AnnounceEnabled     bool
	Fullscreen          bool
	FlashWarningSeconds int
}

// DefaultSettings returns default display settings.
func DefaultSettings() Settings {
	return Settings{
		AnnounceEnabled:     true,
		Fullscreen:          false,
		FlashWarningSeconds: 5,
	}
}
