package inline

import (
	"encoding/json"
	"io"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/zalukaj-cli/zalukaj/router"
)

type Output struct {
	Path          string         `json:"path" jsonschema:"description=Route that was dispatched"`
	Result        *router.Result `json:"result"`
	Notifications []Notification `json:"notifications" jsonschema:"description=Messages reported while the route ran"`
}

func writeJson(out io.Writer, output *Output) error {
	if output.Notifications == nil {
		output.Notifications = []Notification{}
	}

	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(output)
}

// Schema describes the JSON printed by Run.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "output", "result", "item", "info":
			return filepath.Base(t.PkgPath()) + "." + name
		}

		return name
	}

	return reflector.Reflect(&Output{})
}
