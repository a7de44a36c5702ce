// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	setDefaultConfigOn(nil)
}

// setDefaultConfigOn applies the defaults to the given viper instance, or the
// global instance when v is nil.
func setDefaultConfigOn(v *viper.Viper) {
	set := viper.SetDefault
	if v != nil {
		set = v.SetDefault
	}

	set("debug", false)

	set("main.name", "imagevault")
	set("main.log.enabled", true)
	set("main.log.path", "imagevault.log")
	set("main.log.rotation", RotationDaily)
	set("main.log.maxsize", 1048576)

	set("storage.disk", "public")
	set("storage.root", "storage")
	set("storage.baseurl", "/storage")
	set("storage.basepath", "uploads")
	set("storage.format", FormatWebP)
	set("storage.quality", 90)

	set("output.sqlite.enabled", true)
	set("output.sqlite.path", "imagevault.db")
	set("output.mysql.enabled", false)
	set("output.mysql.username", "imagevault")
	set("output.mysql.password", "secret")
	set("output.mysql.database", "imagevault")
	set("output.mysql.host", "localhost")
	set("output.mysql.port", "3306")
}
