package bootstrap

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/openuploader/uploadproxy/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath   string
	rootPath     = ""
	upConfig     = new(ProxyConfig)
	confFilePath = "conf/config.yaml"
)

// ProxyConfig config singleton
type ProxyConfig struct {
	Conf *config.Configuration
	Once *sync.Once
}

// newProxyConfig .
func newProxyConfig() *ProxyConfig {
	return &ProxyConfig{
		Conf: &config.Configuration{},
		Once: &sync.Once{},
	}
}

// NewConfig returns the loaded configuration, loading it on first use
func NewConfig(confFile string) *config.Configuration {
	if upConfig.Conf != nil {
		return upConfig.Conf
	} else {
		upConfig = newProxyConfig()
		if confFile == "" {
			upConfig.initProxyConfig(confFilePath)
		} else {
			upConfig.initProxyConfig(confFile)
		}
		return upConfig.Conf
	}
}

func (up *ProxyConfig) initProxyConfig(confFile string) {
	up.Once.Do(
		func() {
			initConfig(up.Conf, confFile)
		},
	)
}

func initConfig(conf *config.Configuration, confFile string) {
	pflag.StringVarP(&configPath, "conf", "", filepath.Join(rootPath, confFile),
		"config path, eg: --conf config.yaml")
	if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(rootPath, configPath)
	}

	fmt.Println("load config:" + configPath)

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		fmt.Println("read config failed: ", zap.String("err", err.Error()))
		panic(err)
	}

	if err := v.Unmarshal(&conf); err != nil {
		fmt.Println("config parse failed: ", zap.String("err", err.Error()))
	}

	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		fmt.Println("", zap.String("config file changed:", in.Name))
		defer func() {
			if err := recover(); err != nil {
				fmt.Println("config file changed err:", zap.Any("err", err))
			}
		}()
		if err := v.Unmarshal(&conf); err != nil {
			fmt.Println("config parse failed: ", zap.String("err", err.Error()))
		}
	})
	upConfig.Conf = conf
}
