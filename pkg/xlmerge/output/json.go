// Package output renders merged tables to xlsx and serializes results to JSON.
package output

import "encoding/json"

// ToJSON serializes v to JSON, indented when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
