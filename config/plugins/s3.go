package plugins

// S3 aws s3 config. Endpoint overrides the default aws url for
// s3-compatible services.
type S3 struct {
	Region          string `mapstructure:"region" json:"region" yaml:"region"`
	Endpoint        string `mapstructure:"endpoint" json:"endpoint" yaml:"endpoint"`
	AccessKeyId     string `mapstructure:"access_key_id" json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" json:"secret_access_key" yaml:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style" json:"use_path_style" yaml:"use_path_style"`
	Enabled         bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
}
