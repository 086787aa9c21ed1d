package fhir_parser

import (
	"math"

	"github.com/tidwall/gjson"
)

// The accessors below never fail. A path that is absent, null or of the wrong
// JSON type yields the zero value of the requested shape.

func String(node gjson.Result, path string) string {
	value := node.Get(path)
	if value.Type != gjson.String {
		return ""
	}
	return value.Str
}

// Float treats numbers outside the float64 range as malformed, so the result
// always serializes back to JSON.
func Float(node gjson.Result, path string) float64 {
	value := node.Get(path)
	if value.Type != gjson.Number || math.IsInf(value.Num, 0) || math.IsNaN(value.Num) {
		return 0
	}
	return value.Num
}

func Int(node gjson.Result, path string) int {
	value := node.Get(path)
	if value.Type != gjson.Number {
		return 0
	}
	return int(value.Int())
}

// StringList keeps only the string elements of the array at path. The result
// is never nil.
func StringList(node gjson.Result, path string) []string {
	values := []string{}
	for _, element := range Array(node, path) {
		if element.Type == gjson.String {
			values = append(values, element.Str)
		}
	}
	return values
}

func Array(node gjson.Result, path string) []gjson.Result {
	value := node.Get(path)
	if !value.IsArray() {
		return nil
	}
	return value.Array()
}

// Objects returns the object elements of the array at path, skipping anything else.
func Objects(node gjson.Result, path string) []gjson.Result {
	var objects []gjson.Result
	for _, element := range Array(node, path) {
		if element.IsObject() {
			objects = append(objects, element)
		}
	}
	return objects
}

func Object(node gjson.Result, path string) (gjson.Result, bool) {
	value := node.Get(path)
	if !value.IsObject() {
		return gjson.Result{}, false
	}
	return value, true
}

// First returns the first element of the array at path, or an empty result.
func First(node gjson.Result, path string) gjson.Result {
	elements := Array(node, path)
	if len(elements) == 0 {
		return gjson.Result{}
	}
	return elements[0]
}
