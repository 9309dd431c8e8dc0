package config

import "github.com/openuploader/uploadproxy/config/plugins"

// Configuration maps the whole config file
type Configuration struct {
	App      App                 `mapstructure:"app" json:"app" yaml:"app"`
	Log      Log                 `mapstructure:"log" json:"log" yaml:"log"`
	Upload   Upload              `mapstructure:"upload" json:"upload" yaml:"upload"`
	Database []*plugins.Database `mapstructure:"database" json:"database" yaml:"database"`
	Redis    *plugins.Redis      `mapstructure:"redis" json:"redis" yaml:"redis"`
	Minio    *plugins.Minio      `mapstructure:"minio" json:"minio" yaml:"minio"`
	S3       *plugins.S3         `mapstructure:"s3" json:"s3" yaml:"s3"`
	Cos      *plugins.Cos        `mapstructure:"cos" json:"cos" yaml:"cos"`
	Oss      *plugins.Oss        `mapstructure:"oss" json:"oss" yaml:"oss"`
	Local    *plugins.Local      `mapstructure:"local" json:"local" yaml:"local"`
}

// App service identity and listen address
type App struct {
	Name string `mapstructure:"name" json:"name" yaml:"name"`
	Env  string `mapstructure:"env" json:"env" yaml:"env"`
	Port string `mapstructure:"port" json:"port" yaml:"port"`
}

// Log zap + lumberjack settings
type Log struct {
	Level      string `mapstructure:"level" json:"level" yaml:"level"`
	RootDir    string `mapstructure:"root_dir" json:"root_dir" yaml:"root_dir"`
	Filename   string `mapstructure:"filename" json:"filename" yaml:"filename"`
	Format     string `mapstructure:"format" json:"format" yaml:"format"`
	ShowLine   bool   `mapstructure:"show_line" json:"show_line" yaml:"show_line"`
	EnableFile bool   `mapstructure:"enable_file" json:"enable_file" yaml:"enable_file"`
	MaxSize    int    `mapstructure:"max_size" json:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" json:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" json:"compress" yaml:"compress"`
}

// Upload upload coordinator settings
type Upload struct {
	Bucket string `mapstructure:"bucket" json:"bucket" yaml:"bucket"`
}
