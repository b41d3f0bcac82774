package auth

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
	"github.com/zalukaj-cli/zalukaj/key"
)

func init() {
	keyring.MockInit()
}

func TestPassword(t *testing.T) {
	Convey("Given a mocked keyring", t, func() {
		_ = DeletePassword("janek")

		Convey("A stored password can be read back and removed", func() {
			So(SetPassword("janek", "secret"), ShouldBeNil)

			password, err := GetPassword("janek")
			So(err, ShouldBeNil)
			So(password, ShouldEqual, "secret")

			So(DeletePassword("janek"), ShouldBeNil)
			_, err = GetPassword("janek")
			So(errors.Is(err, ErrNoPassword), ShouldBeTrue)
		})

		Convey("Deleting a missing entry is fine", func() {
			So(DeletePassword("nobody"), ShouldBeNil)
		})

		Convey("A blank username is rejected", func() {
			So(errors.Is(SetPassword("  ", "x"), ErrNoUsername), ShouldBeTrue)
			_, err := GetPassword("")
			So(errors.Is(err, ErrNoUsername), ShouldBeTrue)
		})

		Convey("Credentials pair the configured username with its password", func() {
			viper.Set(key.ZalukajUsername, "janek")
			So(SetPassword("janek", "secret"), ShouldBeNil)

			username, password, err := Credentials()
			So(err, ShouldBeNil)
			So(username, ShouldEqual, "janek")
			So(password, ShouldEqual, "secret")

			viper.Set(key.ZalukajUsername, "")
			_, _, err = Credentials()
			So(errors.Is(err, ErrNoUsername), ShouldBeTrue)
		})
	})
}
