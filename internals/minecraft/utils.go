package minecraft

import (
	"encoding/json"
	"strings"
)

// StringSlice is a slice of strings that can be unmarshalled from a
// string or a []string
type StringSlice []string

func (w *StringSlice) String() string {
	return strings.Join(*w, " ")
}

// UnmarshalJSON is needed because argument values sometimes are a
// plain string
func (w *StringSlice) UnmarshalJSON(data []byte) (err error) {
	var arg []string

	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &arg); err != nil {
			return err
		}
		*w = arg
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*w = []string{s}
	return nil
}
