// Package format writes CLI command output. Output is strict JSON so that
// taskchat composes with jq and scripts; human-oriented rendering belongs to
// the TUI, not here.
package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteJSON writes one JSON document followed by a newline.
//
// NOTE: Keep output strict JSON only. If a command needs to communicate how
// to fetch more data, use a `meta` object or `_hints` fields.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
