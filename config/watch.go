package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// WatchLogLevel re-applies APP_LOG_LEVEL whenever the .env file changes.
// Only the log level is hot-reloaded; every other value needs a restart.
func WatchLogLevel(log *logrus.Logger) {
	v := viper.GetViper()
	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		level, err := logrus.ParseLevel(v.GetString("APP_LOG_LEVEL"))
		if err != nil {
			log.Warnf("Ignoring invalid APP_LOG_LEVEL after config change: %+v", err)
			return
		}
		log.SetLevel(level)
		log.Infof("Log level changed to %s (%s)", level, e.Name)
	})
	v.WatchConfig()
}
