package domain

const (
	SettingDarkMode      SettingKey = "darkMode"
	SettingNotifications SettingKey = "notifications"
	SettingFabEnabled    SettingKey = "fabEnabled"
)

// UserSettings is the per-user app settings snapshot. Keys are independent:
// a partial remote document only overrides the keys it carries.
type UserSettings struct {
	DarkMode      bool `json:"darkMode"`
	Notifications bool `json:"notifications"`
	FabEnabled    bool `json:"fabEnabled"`
}

// DefaultSettings are the built-in values used for keys absent remotely.
func DefaultSettings() UserSettings {
	return UserSettings{
		DarkMode:      false,
		Notifications: true,
		FabEnabled:    true,
	}
}

func KnownSettingKey(key SettingKey) bool {
	switch key {
	case SettingDarkMode, SettingNotifications, SettingFabEnabled:
		return true
	}
	return false
}

// Get returns the value for a known key.
func (s UserSettings) Get(key SettingKey) (bool, bool) {
	switch key {
	case SettingDarkMode:
		return s.DarkMode, true
	case SettingNotifications:
		return s.Notifications, true
	case SettingFabEnabled:
		return s.FabEnabled, true
	}
	return false, false
}

// Set assigns the value for a known key, ignoring unknown keys.
func (s *UserSettings) Set(key SettingKey, value bool) {
	switch key {
	case SettingDarkMode:
		s.DarkMode = value
	case SettingNotifications:
		s.Notifications = value
	case SettingFabEnabled:
		s.FabEnabled = value
	}
}
