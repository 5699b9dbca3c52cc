package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default packer settings applied to new projects
	DefaultMode            PackMode `json:"default_mode"`
	DefaultMaxBinDimension int      `json:"default_max_bin_dimension"`
	DefaultPadding         int      `json:"default_padding"`
	DefaultAllowRotation   bool     `json:"default_allow_rotation"`

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	ReportTitle    string   `json:"report_title"` // Heading printed on PDF reports
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultMode:            defaults.Mode,
		DefaultMaxBinDimension: defaults.MaxBinDimension,
		DefaultPadding:         defaults.Padding,
		DefaultAllowRotation:   defaults.AllowRotation,
		RecentProjects:         []string{},
		ReportTitle:            "AtlasPack",
	}
}

// ApplyToSettings copies the default values from AppConfig into a PackSettings struct.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	if c.DefaultMode != "" {
		s.Mode = c.DefaultMode
	}
	s.MaxBinDimension = c.DefaultMaxBinDimension
	s.Padding = c.DefaultPadding
	s.AllowRotation = c.DefaultAllowRotation
}

// AddRecentProject moves path to the front of the recent list, keeping at most limit entries.
func (c *AppConfig) AddRecentProject(path string, limit int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	c.RecentProjects = recent
}
