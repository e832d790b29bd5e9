// Package main is an example out-of-tree Avalon extension, built as a Go
// plugin with:
//
//	go build -buildmode=plugin -o quote.so .
//
// and loaded by naming the .so on AVALON_EXTENSION_PATH:
//
//	AVALON_EXTENSION_PATH=./quote.so avalon 1quote
//
// It registers a "quote" model that emits fake person/company records via
// github.com/pioz/faker, demonstrating that a plugin depends on nothing
// but public/extension and the component interfaces it needs.
package main

import (
	"context"

	"github.com/pioz/faker"

	"github.com/avalon-project/avalon/public/extension"
)

func init() {
	extension.RegisterModel("quote", extension.ArgSpecs{
		{Dest: "quote_locale", Type: extension.FieldString, Description: "faker locale", Default: "en"},
	}, nil, newQuoteModel)
}

type quoteModel struct{}

func newQuoteModel(attrs map[string]any) (extension.ModelType, error) {
	return &quoteModel{}, nil
}

func (m *quoteModel) Next(ctx context.Context) (extension.Record, error) {
	return extension.Record{
		"name":    faker.Name(),
		"email":   faker.Email(),
		"company": faker.Company(),
		"quote":   faker.Sentence(8),
	}, nil
}

// main is required for a Go plugin's package main but is never called; the
// host process only triggers this file's init().
func main() {}
