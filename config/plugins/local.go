package plugins

// Local local filesystem storage config
type Local struct {
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
}
