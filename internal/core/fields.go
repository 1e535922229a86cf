package core

import (
	"fmt"
	"reflect"
	"strings"
)

// JSONFields builds a FieldValue that looks fields up by their JSON key,
// walking the struct once up front. Panics if R is not a struct; that is a
// programming error caught at registration.
func JSONFields[R any]() FieldValue[R] {
	t := reflect.TypeOf((*R)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("JSONFields: %s is not a struct", t))
	}

	index := make(map[string][]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		index[name] = f.Index
	}

	return func(row R, key string) (any, bool) {
		path, ok := index[key]
		if !ok {
			return nil, false
		}
		return reflect.ValueOf(row).FieldByIndex(path).Interface(), true
	}
}

// missingFields returns the keys the accessor does not know.
func missingFields[R any](value FieldValue[R], keys []string) []string {
	var zero R
	var missing []string
	for _, k := range keys {
		if _, ok := value(zero, k); !ok {
			missing = append(missing, k)
		}
	}
	return missing
}
