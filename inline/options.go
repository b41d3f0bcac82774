package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/zalukaj-cli/zalukaj/util"
)

// Picker chooses one of the offered labels and returns its index, or -1 for none.
type Picker func(labels []string) int

type Options struct {
	Out  io.Writer
	Path string
	Json bool
	Pick mo.Option[Picker]
}

// ParsePicker builds a Picker from a selector such as "first", "last", "2" or "exact:720p".
func ParsePicker(selector string) (Picker, error) {
	kind, value, _ := strings.Cut(selector, ":")

	switch kind {
	case "first":
		return func(labels []string) int {
			if len(labels) == 0 {
				return -1
			}
			return 0
		}, nil
	case "last":
		return func(labels []string) int {
			return len(labels) - 1
		}, nil
	case "exact":
		return func(labels []string) int {
			_, index, ok := lo.FindIndexOf(labels, func(label string) bool {
				return strings.EqualFold(label, value)
			})
			if !ok {
				return -1
			}
			return index
		}, nil
	}

	index, err := strconv.ParseUint(kind, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid selector: %s", selector)
	}

	return func(labels []string) int {
		if len(labels) == 0 {
			return -1
		}
		return int(util.Min(index, uint64(len(labels)-1)))
	}, nil
}
