package components

import (
	"encoding/json"

	zlog "github.com/rs/zerolog/log"
)

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		zlog.Error().Err(err).Msg("Error marshaling JSON")
		return "{}"
	}
	return string(b)
}
