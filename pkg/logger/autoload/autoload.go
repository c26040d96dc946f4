// Package autoload initializes the global logger from LOG_* environment
// variables. Import it for its side effect:
//
//	_ "github.com/panuwat-dev/storefront-agent/pkg/logger/autoload"
package autoload

import (
	"github.com/kelseyhightower/envconfig"

	logx "github.com/panuwat-dev/storefront-agent/pkg/logger"
)

func init() {
	var cfg logx.Config
	if err := envconfig.Process("LOG", &cfg); err != nil {
		logx.Init()
		return
	}
	logx.Init(cfg)
}
