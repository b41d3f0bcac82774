package player

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestArguments(t *testing.T) {
	Convey("Given a stream with headers", t, func() {
		args := arguments("/tmp/mpv.sock", "https://cdn/720.mp4", "Gorączka", map[string]string{
			"Referer": "https://zalukaj.com/",
			"Cookie":  "PHPSESSID=abc,def",
		})

		Convey("The socket and title are passed", func() {
			So(args, ShouldContain, "--input-ipc-server=/tmp/mpv.sock")
			So(args, ShouldContain, "--force-media-title=Gorączka")
		})

		Convey("Headers are sorted and commas escaped", func() {
			So(args, ShouldContain, "--http-header-fields=Cookie: PHPSESSID=abc%2Cdef,Referer: https://zalukaj.com/")
		})

		Convey("The target comes last after an end-of-flags marker", func() {
			So(args[len(args)-2], ShouldEqual, "--")
			So(args[len(args)-1], ShouldEqual, "https://cdn/720.mp4")
		})
	})

	Convey("Without headers no header flag is passed", t, func() {
		args := arguments("s", "t", "x", nil)
		for _, arg := range args {
			So(arg, ShouldNotStartWith, "--http-header-fields")
		}
	})
}

func TestSanitize(t *testing.T) {
	Convey("Media targets", t, func() {
		_, err := sanitizeMediaTarget("--script=evil.lua")
		So(err, ShouldNotBeNil)

		_, err = sanitizeMediaTarget("file:///etc/passwd")
		So(err, ShouldNotBeNil)

		_, err = sanitizeMediaTarget("  ")
		So(err, ShouldNotBeNil)

		target, err := sanitizeMediaTarget(" https://cdn/720.mp4 ")
		So(err, ShouldBeNil)
		So(target, ShouldEqual, "https://cdn/720.mp4")
	})

	Convey("Titles", t, func() {
		So(sanitizeTitle(" Gra\no\ttron\x00 "), ShouldEqual, "Gra o tron")
	})
}

// serveIPC answers every command on a unix socket, preceding each reply with an event.
func serveIPC(path string, reply func(command []interface{}) (interface{}, string)) (net.Listener, error) {
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					var cmd ipcCommand
					if json.Unmarshal(scanner.Bytes(), &cmd) != nil {
						return
					}
					data, status := reply(cmd.Command)
					event, _ := json.Marshal(map[string]interface{}{"event": "property-change"})
					response, _ := json.Marshal(map[string]interface{}{"data": data, "error": status, "request_id": cmd.RequestID})
					_, _ = conn.Write(append(append(event, '\n'), append(response, '\n')...))
				}
			}(conn)
		}
	}()
	return listener, nil
}

func TestIPC(t *testing.T) {
	Convey("Given an mpv-like IPC socket", t, func() {
		path := filepath.Join(os.TempDir(), fmt.Sprintf("zalukaj-test-%d.sock", time.Now().UnixNano()))
		listener, err := serveIPC(path, func(command []interface{}) (interface{}, string) {
			switch command[1] {
			case "time-pos":
				return 30.0, "success"
			case "duration":
				return 120.0, "success"
			default:
				return nil, "property unavailable"
			}
		})
		So(err, ShouldBeNil)
		defer listener.Close()

		m := NewMPV("mpv")
		m.socketPath = path

		Convey("Replies are matched past events", func() {
			percent, err := m.GetPercentWatched()
			So(err, ShouldBeNil)
			So(percent, ShouldEqual, 25.0)
		})

		Convey("mpv errors are surfaced", func() {
			_, err := m.getFloatProperty("chapter")
			So(err, ShouldNotBeNil)
		})
	})
}

type fakePlayer struct {
	percents []float64
	exited   chan struct{}
	closed   bool
	playErr  error
}

func (p *fakePlayer) Play(string, string, map[string]string) error { return p.playErr }
func (p *fakePlayer) IsRunning() bool                              { return !p.closed }
func (p *fakePlayer) Wait() <-chan struct{}                        { return p.exited }

func (p *fakePlayer) GetPercentWatched() (float64, error) {
	if len(p.percents) == 0 {
		close(p.exited)
		return 0, errors.New("gone")
	}
	percent := p.percents[0]
	p.percents = p.percents[1:]
	return percent, nil
}

func (p *fakePlayer) Close() error {
	p.closed = true
	return nil
}

func TestWatch(t *testing.T) {
	Convey("Given a player that reports progress", t, func() {
		pollInterval = time.Millisecond
		p := &fakePlayer{percents: []float64{10, 85, 40}, exited: make(chan struct{})}

		Convey("Watch returns the furthest position and closes the player", func() {
			percent, err := Watch(context.Background(), p, "https://cdn/720.mp4", "x", nil)
			So(err, ShouldBeNil)
			So(percent, ShouldEqual, 85.0)
			So(p.closed, ShouldBeTrue)
		})

		Convey("A failed start is returned", func() {
			p.playErr = errors.New("no mpv")
			_, err := Watch(context.Background(), p, "u", "t", nil)
			So(err, ShouldNotBeNil)
		})

		Convey("Cancelling the context stops waiting", func() {
			pollInterval = time.Hour
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := Watch(ctx, p, "u", "t", nil)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given a player name", t, func() {
		Convey("Anything but mpv is handed to the system opener", func() {
			p, err := New("vlc")
			So(err, ShouldBeNil)
			_, ok := p.(*External)
			So(ok, ShouldBeTrue)
			So(p.IsRunning(), ShouldBeFalse)
		})

		Convey("mpv is recognised by its file name", func() {
			So(isMPV("/usr/local/bin/mpv"), ShouldBeTrue)
			So(isMPV("mpv.exe"), ShouldBeTrue)
			So(isMPV("mpvpaper"), ShouldBeFalse)
		})
	})
}

func TestExternal(t *testing.T) {
	Convey("Given an external player", t, func() {
		p := NewExternal("true")

		Convey("It cannot report the position", func() {
			_, err := p.GetPercentWatched()
			So(errors.Is(err, ErrNoPosition), ShouldBeTrue)
		})

		Convey("Unsafe targets are rejected before starting anything", func() {
			So(p.Play("--help", "x", nil), ShouldNotBeNil)
			So(p.IsRunning(), ShouldBeFalse)
		})
	})
}
