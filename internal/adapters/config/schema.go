package config

// File is the DTO for recache.yaml.
type File struct {
	// Root overrides the workspace root; relative values resolve against the file's directory.
	Root    string   `yaml:"root"`
	Policy  string   `yaml:"policy"`
	Oracle  string   `yaml:"oracle"`
	Entries []string `yaml:"entries"`
	Watch   WatchDTO `yaml:"watch"`
	Log     LogDTO   `yaml:"log"`
}

// WatchDTO is the DTO for the watch section.
type WatchDTO struct {
	Roots    []string `yaml:"roots"`
	Debounce string   `yaml:"debounce"`
	Ignore   []string `yaml:"ignore"`
}

// LogDTO is the DTO for the log section.
type LogDTO struct {
	JSON  bool   `yaml:"json"`
	Level string `yaml:"level"`
}
