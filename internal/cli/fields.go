package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-melon-sync/models"
)

// parseFields turns name=value arguments into record fields. A value that is
// valid JSON keeps its JSON type (numbers, booleans, null, quoted strings,
// objects and arrays); anything else is taken as a plain string.
//
//	parseFields([]string{"text=buy milk", "done=false", "n=3"})
//	// models.Fields{"text": "buy milk", "done": false, "n": float64(3)}
func parseFields(args []string) (models.Fields, error) {
	fields := make(models.Fields, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q is not name=value", errInvalidFieldArg, arg)
		}

		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		fields[name] = value
	}
	return fields, nil
}
