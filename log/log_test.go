package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/filesystem"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/where"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)

		Convey("WithFields should still return a usable entry", func() {
			entry := WithFields(Fields{"url": "https://zalukaj.com"})
			So(entry, ShouldNotBeNil)
			So(func() { entry.Info("ignored") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)

		Convey("A daily log file should be created", func() {
			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			So(lo.Must(filesystem.API().Exists(path)), ShouldBeTrue)
		})
	})
}
