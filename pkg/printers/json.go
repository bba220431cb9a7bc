package printers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSON writes v to w as indented JSON followed by a newline.
func JSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
