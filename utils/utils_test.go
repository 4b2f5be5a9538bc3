package utils

import (
	"testing"

	. "github.com/fulldump/biff"
)

func TestGetKeys(t *testing.T) {

	AssertEqual(GetKeys(map[string]int{"b": 1, "c": 2, "a": 3}), []string{"a", "b", "c"})
	AssertEqual(len(GetKeys(map[string]bool{})), 0)
}

func TestRemarshal(t *testing.T) {

	input := struct {
		ID    int     `json:"id"`
		Grade float64 `json:"grade"`
	}{ID: 7, Grade: 92.5}

	output := map[string]interface{}{}
	err := Remarshal(input, &output)
	AssertNil(err)
	AssertEqual(output, map[string]interface{}{"id": 7.0, "grade": 92.5})
}
