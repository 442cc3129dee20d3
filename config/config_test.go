package config

import (
	"testing"

	"github.com/homestream-cli/homestream/filesystem"
	"github.com/homestream-cli/homestream/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error when no file exists", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should populate every registered default", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.CacheTTL), ShouldEqual, 10800)
			So(viper.GetInt(key.SearchTimeout), ShouldEqual, 10)
			So(viper.GetString(key.SearchMultiSource), ShouldEqual, "enabled")
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("search.multi_source"), ShouldEqual, "search_multi_source")
		})
	})
}

func TestFieldEnv(t *testing.T) {
	Convey("Given a registered field", t, func() {
		f := Default[key.CacheTTL]

		Convey("Its environment name should carry the application prefix", func() {
			So(f.Env(), ShouldEqual, "HOMESTREAM_CACHE_TTL")
		})

		Convey("Its type name should follow the default value", func() {
			So(f.typeName(), ShouldEqual, "int")
		})
	})
}
