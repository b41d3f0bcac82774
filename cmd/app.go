package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/auth"
	"github.com/zalukaj-cli/zalukaj/config"
	"github.com/zalukaj-cli/zalukaj/icon"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/router"
	"github.com/zalukaj-cli/zalukaj/style"
	"github.com/zalukaj-cli/zalukaj/zalukaj"
)

// newClient opens the site session configured by the user.
func newClient() *zalukaj.Client {
	client, err := zalukaj.New(zalukaj.Options{
		Timeout:     config.Timeout(),
		Fingerprint: viper.GetBool(key.NetworkTLSFingerprint),
	})
	handleErr(err)
	return client
}

// newRouter wires the catalog, the stored credentials and the video preferences.
func newRouter(host router.Host) *router.Router {
	return router.New(router.Options{
		Catalog:          newClient(),
		Host:             host,
		Credentials:      auth.Credentials,
		Login:            viper.GetBool(key.ZalukajLogin),
		PreferredQuality: viper.GetString(key.VideoQuality),
		PreferredVersion: viper.GetString(key.VideoVersion),
	})
}

// interruptible returns a context cancelled on the first ctrl+c. A second one kills the process.
func interruptible() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}

// promptHost reports to the terminal and asks through survey prompts.
type promptHost struct{}

func (promptHost) Notify(header, message string) {
	log.WithFields(log.Fields{"header": header}).Info(message)
	_, _ = fmt.Fprintf(os.Stderr, "%s %s %s\n", icon.Get(icon.Mark), style.Bold(header), message)
}

func (promptHost) Select(title string, options []string) (int, error) {
	var index int
	err := survey.AskOne(&survey.Select{
		Message: title,
		Options: options,
	}, &index)

	if errors.Is(err, terminal.InterruptErr) {
		return -1, router.ErrCancelled
	}
	if err != nil {
		return -1, err
	}
	return index, nil
}
