package open

import (
	"runtime"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalukaj-cli/zalukaj/constant"
)

func TestCommand(t *testing.T) {
	Convey("Given a stream link", t, func() {
		link := "https://cdn.example.com/v.mp4?a=1&b=2"

		Convey("Without an app the system handler should be used", func() {
			cmd, err := Command(link, "")
			So(err, ShouldBeNil)
			So(cmd.Args[len(cmd.Args)-1], ShouldEqual, link)
		})

		Convey("With an app it should be passed the link", func() {
			if runtime.GOOS != constant.Linux {
				SkipSo(runtime.GOOS, ShouldEqual, constant.Linux)
				return
			}
			cmd, err := Command(link, "vlc")
			So(err, ShouldBeNil)
			So(cmd.Args, ShouldResemble, []string{"vlc", link})
		})
	})
}
