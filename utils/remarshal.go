package utils

import (
	jsonv2 "github.com/go-json-experiment/json"
)

// Remarshal converts input into output through its JSON form
func Remarshal(input interface{}, output interface{}) error {
	b, err := jsonv2.Marshal(input)
	if err != nil {
		return err
	}
	return jsonv2.Unmarshal(b, output)
}
