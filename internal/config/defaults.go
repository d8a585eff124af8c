package config

// Default returns the built-in configuration used as the base layer for
// every run. Site identity fields are intentionally empty: they are required
// and must come from a settings file, the environment, or overrides.
func Default() Config {
	return Config{
		Site: Site{
			Favicon: "favicon.png",
		},
		Features: Features{
			Search:      true,
			GraphView:   true,
			Navigation:  true,
			ThemeToggle: true,
			Backlinks:   true,
			Tags:        true,
			Outline:     true,
			Sidebar:     true,
		},
		SEO: SEO{
			GenerateSitemap: true,
			GenerateRobots:  true,
		},
		Advanced: Advanced{
			SlugifyPaths:     true,
			OfflineResources: true,
		},
	}
}
