// Package inline runs a single route without the interactive interface and prints its result.
package inline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/zalukaj-cli/zalukaj/log"
	"github.com/zalukaj-cli/zalukaj/router"
)

// ErrNothingToPlay is returned in plain mode when a play route resolves no stream.
var ErrNothingToPlay = errors.New("nothing to play")

// Dispatcher runs routes.
type Dispatcher interface {
	Dispatch(ctx context.Context, path string) (*router.Result, error)
}

// Run dispatches options.Path and writes the result to options.Out.
// Plain output lists one "label<TAB>path" line per item, or the stream URL for play routes.
func Run(ctx context.Context, d Dispatcher, host *Host, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	path := options.Path
	if path == "" {
		path = router.RouteIndex
	}

	result, err := d.Dispatch(ctx, path)
	if err != nil {
		return err
	}
	log.Infof("inline %s done", path)

	if options.Json {
		return writeJson(options.Out, &Output{
			Path:          path,
			Result:        result,
			Notifications: host.Notifications(),
		})
	}

	switch {
	case result.Resolved != nil:
		if !result.Resolved.OK() {
			return ErrNothingToPlay
		}
		_, err = fmt.Fprintln(options.Out, result.Resolved.URL)
		return err
	case result.Directory != nil:
		for _, item := range result.Directory.Items {
			if _, err := fmt.Fprintf(options.Out, "%s\t%s\n", item.Label, item.Path); err != nil {
				return err
			}
		}
	}

	return nil
}
