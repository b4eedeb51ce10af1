package channels

import (
	"github.com/webstatus/digestmail/app/digest"
)

// Config is one notification channel definition, loaded from a YAML file in
// the channels directory. The channel ID is derived from the filename.
type Config struct {
	ID        string               `yaml:"-"`
	Name      string               `yaml:"name"`
	Frequency string               `yaml:"frequency"`
	Settings  ConfigSettings       `yaml:"settings"`
	Triggers  []digest.JobTrigger  `yaml:"triggers"`
}

type ConfigSettings struct {
	Enabled bool `yaml:"enabled"`
}
