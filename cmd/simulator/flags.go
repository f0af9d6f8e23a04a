package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindFlags binds config keys to flags so an explicitly set flag wins over
// the file and the environment.
func bindFlags(v *viper.Viper, lookup func(string) *pflag.Flag, keys map[string]string) {
	for key, name := range keys {
		if flag := lookup(name); flag != nil {
			_ = v.BindPFlag(key, flag)
		}
	}
}
