package lockfile

// document is the subset of a pixi lockfile needed to install Python packages.
type document struct {
	Version      int                    `yaml:"version"`
	Environments map[string]environment `yaml:"environments"`
	Packages     []packageEntry         `yaml:"packages"`
}

type environment struct {
	Packages map[string][]packageRef `yaml:"packages"`
}

// packageRef points from an environment platform into the package list.
type packageRef struct {
	Conda string `yaml:"conda"`
	PyPI  string `yaml:"pypi"`
}

type packageEntry struct {
	// Version 6 keys entries by their location.
	Conda string `yaml:"conda"`
	PyPI  string `yaml:"pypi"`

	// Version 5 uses a kind discriminator with url or path.
	Kind string `yaml:"kind"`
	URL  string `yaml:"url"`
	Path string `yaml:"path"`

	Name           string `yaml:"name"`
	Version        string `yaml:"version"`
	SHA256         string `yaml:"sha256"`
	MD5            string `yaml:"md5"`
	RequiresPython string `yaml:"requires_python"`
	Editable       bool   `yaml:"editable"`
}

// location returns the key environments use to reference a PyPI entry.
func (p *packageEntry) location() (string, bool) {
	if p.PyPI != "" {
		return p.PyPI, true
	}
	if p.Kind != "pypi" {
		return "", false
	}
	if p.URL != "" {
		return p.URL, true
	}
	return p.Path, p.Path != ""
}
