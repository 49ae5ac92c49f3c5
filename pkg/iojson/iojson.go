// Package iojson reads and writes the JSON documents exchanged by the
// command line: notification input and machine readable command output.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// marshalFailure is written to the error stream when a value cannot be
// encoded. It is built by hand so it never fails itself.
func marshalFailure(err error) string {
	msg, _ := json.Marshal(err.Error())
	return fmt.Sprintf(`{"message":"iojson: marshal output","data":{"json_error":%s}}`, msg)
}

// WriteWith writes obj as indented JSON to w. When obj cannot be encoded a
// JSON error document goes to ew instead.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, werr := fmt.Fprintln(ew, marshalFailure(err))
		if werr != nil {
			return werr
		}
		return fmt.Errorf("marshal output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
