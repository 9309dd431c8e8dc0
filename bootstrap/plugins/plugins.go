package plugins

import (
	"fmt"

	"github.com/openuploader/uploadproxy/bootstrap"
)

// Plugin lifecycle of one external resource
type Plugin interface {
	// Flag whether the plugin is enabled
	Flag() bool
	// Name plugin name
	Name() string
	// New builds the plugin resource
	New() interface{}
	// Health plugin health check
	Health()
	// Close releases the plugin resource
	Close()
}

// Plugins registered plugin set
var Plugins = make(map[string]Plugin)

// RegisteredPlugin registers a plugin
func RegisteredPlugin(plugin Plugin) {
	Plugins[plugin.Name()] = plugin
}

// NewPlugins initializes and health-checks all enabled plugins
func NewPlugins() {
	for _, p := range Plugins {
		if !p.Flag() {
			continue
		}
		bootstrap.NewLogger().Logger.Info(fmt.Sprintf("%s Init ... ", p.Name()))
		p.New()
		bootstrap.NewLogger().Logger.Info(fmt.Sprintf("%s HealthCheck ... ", p.Name()))
		p.Health()
		bootstrap.NewLogger().Logger.Info(fmt.Sprintf("%s Success Init. ", p.Name()))
	}
}

// ClosePlugins releases all enabled plugins
func ClosePlugins() {
	for _, p := range Plugins {
		if !p.Flag() {
			continue
		}
		p.Close()
		bootstrap.NewLogger().Logger.Info(fmt.Sprintf("%s Success Close ... ", p.Name()))
	}
}
