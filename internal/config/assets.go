package config

import (
	"os"
	"path/filepath"
)

// AssetDir resolves the directory holding bundled assets. An explicit
// setting wins; otherwise assets/ next to the executable is used when it
// exists, falling back to assets/ under the working directory.
func (c *Config) AssetDir() string {
	if c.Assets.Dir != "" {
		return c.Assets.Dir
	}

	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "assets")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "assets"
	}
	return filepath.Join(wd, "assets")
}

func (c *Config) BackgroundPath() string {
	return c.assetPath(c.Assets.Background)
}

func (c *Config) SoundPath() string {
	return c.assetPath(c.Assets.Sound)
}

func (c *Config) assetPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.AssetDir(), name)
}
