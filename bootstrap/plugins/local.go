package plugins

import (
	"github.com/openuploader/uploadproxy/bootstrap"
)

type ProxyLocal struct {
}

// Name .
func (up *ProxyLocal) Name() string {
	return "Local"
}

// New .
func (up *ProxyLocal) New() interface{} {
	return nil
}

// Health .
func (up *ProxyLocal) Health() {}

// Close .
func (up *ProxyLocal) Close() {}

// Flag .
func (up *ProxyLocal) Flag() bool {
	return bootstrap.NewConfig("").Local.Enabled
}

func init() {
	p := &ProxyLocal{}
	RegisteredPlugin(p)
}
