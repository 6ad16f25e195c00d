package config

import "sort"

// Presets are named playback profiles.
var Presets = map[string]*Config{
	"fast":   {SpeedMs: 5, PathFactor: 3},
	"normal": {SpeedMs: DefaultSpeed, PathFactor: DefaultPathFactor},
	"slow":   {SpeedMs: 25, PathFactor: DefaultPathFactor},
	"crawl":  {SpeedMs: MaxSpeed, PathFactor: 2},
}

// GetPreset returns the default configuration with the named profile applied,
// or nil when no such preset exists.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.ApplyPreset(p)
	return cfg
}

func (c *Config) ApplyPreset(p *Config) {
	c.SpeedMs = p.SpeedMs
	c.PathFactor = p.PathFactor
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
