/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"text/template"
)

// Config holds the code generation configuration.
type Config struct {
	// Package is the Go package name for generated code.
	Package string
	// Source names the kind map file in the generated header.
	Source string
}

type templateData struct {
	Package string
	Source  string
	Kinds   []kindData
}

type kindData struct {
	Name       string
	Plural     string
	KeyPattern string
	GoName     string
	GoPlural   string
	HasPlural  bool
	Fields     []fieldData
}

type fieldData struct {
	Name   string
	GoName string
	GoType string
}

// Generate renders the Go source for km: one record type per kind, the Kinds map
// and a DataStore with Add, Get, GetAll and Clear methods for every kind.
func Generate(cfg Config, km *KindMapFile) ([]byte, error) {
	if cfg.Package == "" {
		return nil, fmt.Errorf("package name must not be empty")
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}

	data := templateData{
		Package: cfg.Package,
		Source:  cfg.Source,
		Kinds:   make([]kindData, 0, len(km.Kinds)),
	}
	for _, k := range km.Kinds {
		kd := kindData{
			Name:       k.Name,
			Plural:     k.plural(),
			KeyPattern: k.KeyPattern,
			GoName:     k.goName(),
			GoPlural:   exported(k.plural()),
			HasPlural:  k.Plural != "",
		}
		for _, f := range k.Fields {
			kd.Fields = append(kd.Fields, fieldData{
				Name:   f.Name,
				GoName: exported(f.Name),
				GoType: goTypes[f.Type],
			})
		}
		data.Kinds = append(data.Kinds, kd)
	}

	tmpl, err := template.New("kinds").Parse(kindsTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// unformatted output helps debugging the template
		return buf.Bytes(), fmt.Errorf("formatting generated code: %w", err)
	}
	return formatted, nil
}

// GenerateFile reads the kind map at in and writes the generated package file to out.
func GenerateFile(in, out, pkg string) (*KindMapFile, error) {
	km, err := LoadKindMap(in)
	if err != nil {
		return nil, err
	}
	code, err := Generate(Config{Package: pkg, Source: filepath.Base(in)}, km)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(out, code, 0644); err != nil {
		return nil, fmt.Errorf("writing output: %w", err)
	}
	return km, nil
}

const kindsTemplate = `// Code generated by kindgen{{if .Source}} from {{.Source}}{{end}}. DO NOT EDIT.

package {{.Package}}

import (
	"context"

	"github.com/suparena/kindstore"
	"github.com/suparena/kindstore/registry"
)
{{range .Kinds}}
// {{.GoName}} is a record of kind {{.Name}}.
type {{.GoName}} struct {
	ID string ` + "`" + `json:"id" yaml:"id" mapstructure:"id" dynamodbav:"id"` + "`" + `
{{- range .Fields}}
	{{.GoName}} {{.GoType}} ` + "`" + `json:"{{.Name}}" yaml:"{{.Name}}" mapstructure:"{{.Name}}" dynamodbav:"{{.Name}}"` + "`" + `
{{- end}}
}

// GetID returns the record id.
func (r {{.GoName}}) GetID() string {
	return r.ID
}
{{end}}
// Kinds holds every kind of the package, in declaration order.
var Kinds = registry.NewKindMap()

var (
{{- range .Kinds}}
	{{.GoName}}Kind = registry.MustDefine[{{.GoName}}](Kinds, "{{.Name}}"
		{{- if .HasPlural}}, registry.WithPlural("{{.Plural}}"){{end}}
		{{- if .KeyPattern}}, registry.WithKeyPattern({{printf "%q" .KeyPattern}}){{end}})
{{- end}}
)

// DataStore holds the records of every kind.
type DataStore struct {
	store *kindstore.Store
{{- range .Kinds}}
	{{.Plural}} *kindstore.Collection[{{.GoName}}]
{{- end}}
}

// NewDataStore creates an empty DataStore.
func NewDataStore(opts ...kindstore.Option) (*DataStore, error) {
	store, err := kindstore.New(Kinds, opts...)
	if err != nil {
		return nil, err
	}
	return WrapStore(store)
}

// WrapStore returns a DataStore over store, which must hold every kind of Kinds.
func WrapStore(store *kindstore.Store) (*DataStore, error) {
	d := &DataStore{store: store}
	var err error
{{- range .Kinds}}
	if d.{{.Plural}}, err = kindstore.For[{{.GoName}}](store); err != nil {
		return nil, err
	}
{{- end}}
	return d, nil
}

// Store returns the underlying store.
func (d *DataStore) Store() *kindstore.Store {
	return d.store
}

// Close releases the store.
func (d *DataStore) Close() error {
	return d.store.Close()
}
{{range .Kinds}}
// Add{{.GoName}} stores r, replacing any {{.Name}} with the same id.
func (d *DataStore) Add{{.GoName}}(ctx context.Context, r {{.GoName}}) error {
	return d.{{.Plural}}.Add(ctx, r)
}

// Get{{.GoName}} returns the {{.Name}} stored under id.
func (d *DataStore) Get{{.GoName}}(ctx context.Context, id string) ({{.GoName}}, error) {
	return d.{{.Plural}}.Get(ctx, id)
}

// GetAll{{.GoPlural}} returns every stored {{.Name}}.
func (d *DataStore) GetAll{{.GoPlural}}(ctx context.Context) ([]{{.GoName}}, error) {
	return d.{{.Plural}}.GetAll(ctx)
}

// Clear{{.GoPlural}} removes every {{.Name}}.
func (d *DataStore) Clear{{.GoPlural}}(ctx context.Context) error {
	return d.{{.Plural}}.Clear(ctx)
}
{{end}}`
