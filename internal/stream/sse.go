// Package stream implements the streaming driver (§4.G): it decouples the
// solver, which may block for the full time budget, from a consumer that
// pulls records cooperatively, via a bounded channel. Records are encoded
// using server-sent-events framing for the output contract in §6.2.
package stream

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteSSE encodes v as one `data: <json>\n\n` frame and writes it to w,
// per §6.2's "UTF-8 lines with a data: prefix and blank-line terminator".
func WriteSSE(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}
