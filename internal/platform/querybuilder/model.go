package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Struct fields map to columns through the db tag. A ",readonly" option
// keeps the column in Columns but out of inserts, for database-filled
// values such as defaults.
type columnField struct {
	name     string
	index    int
	readonly bool
}

var modelPlans sync.Map // reflect.Type -> []columnField

func planFor(model any) (reflect.Value, []columnField, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	if cached, ok := modelPlans.Load(typ); ok {
		return value, cached.([]columnField), nil
	}

	fields := make([]columnField, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		fields = append(fields, columnField{
			name:     name,
			index:    i,
			readonly: strings.Contains(opts, "readonly"),
		})
	}
	if len(fields) == 0 {
		return reflect.Value{}, nil, fmt.Errorf("model %s has no db columns", typ)
	}

	modelPlans.Store(typ, fields)
	return value, fields, nil
}

// Columns lists every db column of model in field order.
func Columns(model any) ([]string, error) {
	_, fields, err := planFor(model)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.name)
	}
	return out, nil
}

// MustColumns is Columns for package-level table definitions.
func MustColumns(model any) []string {
	cols, err := Columns(model)
	if err != nil {
		panic(err)
	}
	return cols
}

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value, fields, err := planFor(model)
	if err != nil {
		return "", nil, err
	}

	cols := make([]string, 0, len(fields))
	vals := make([]any, 0, len(fields))
	for _, f := range fields {
		if f.readonly {
			continue
		}
		cols = append(cols, f.name)
		vals = append(vals, value.Field(f.index).Interface())
	}
	if len(cols) == 0 {
		return "", nil, fmt.Errorf("model %s has no writable columns", value.Type())
	}

	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}
