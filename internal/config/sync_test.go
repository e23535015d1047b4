// SPDX-License-Identifier: MPL-2.0

package config

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// schemaFields returns the field names of the #Config definition.
func schemaFields(t *testing.T) []string {
	t.Helper()

	schema := cuecontext.New().CompileString(configSchema)
	if schema.Err() != nil {
		t.Fatalf("failed to compile CUE schema: %v", schema.Err())
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))
	if def.Err() != nil {
		t.Fatalf("failed to lookup #Config: %v", def.Err())
	}

	iter, err := def.Fields(cue.Definitions(false), cue.Optional(true))
	if err != nil {
		t.Fatalf("failed to iterate CUE fields: %v", err)
	}
	var fields []string
	for iter.Next() {
		sel := iter.Selector()
		if sel.LabelType().IsHidden() || sel.IsDefinition() {
			continue
		}
		fields = append(fields, strings.TrimSuffix(sel.String(), "?"))
	}
	slices.Sort(fields)
	return fields
}

// jsonFields returns the json tag names of Config, excluding "-".
func jsonFields(t *testing.T) []string {
	t.Helper()

	var fields []string
	typ := reflect.TypeFor[Config]()
	for i := range typ.NumField() {
		field := typ.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if !field.IsExported() || name == "" || name == "-" {
			continue
		}
		fields = append(fields, name)
	}
	slices.Sort(fields)
	return fields
}

func TestConfigSchemaSync(t *testing.T) {
	t.Parallel()

	cueFields, goFields := schemaFields(t), jsonFields(t)
	if !slices.Equal(cueFields, goFields) {
		t.Errorf("#Config fields %v do not match Config json tags %v", cueFields, goFields)
	}

	keys := slices.Clone(Keys)
	slices.Sort(keys)
	if !slices.Equal(keys, goFields) {
		t.Errorf("Keys %v do not match Config json tags %v", keys, goFields)
	}
}

func TestConfigSchemaSync_MapstructureTags(t *testing.T) {
	t.Parallel()

	typ := reflect.TypeFor[Config]()
	for i := range typ.NumField() {
		field := typ.Field(i)
		jsonName, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if got := field.Tag.Get("mapstructure"); got != jsonName {
			t.Errorf("field %s: mapstructure tag %q, json tag %q", field.Name, got, jsonName)
		}
	}
}
