// Package mime maps requested file names to Content-Type values.
package mime

import "strings"

// Default is returned when no rule matches.
const Default = "application/octet-stream"

// Rule maps any of its extension substrings to a content type.
type Rule struct {
	Extensions []string
	Type       string
}

// Rules is the ordered lookup table. The first rule whose extension appears
// anywhere in the name wins, so ".json" must stay ahead of ".js". This puts
// ".json" earlier than the classic table, which listed ".js" first and so
// served "data.json" as application/javascript.
var Rules = []Rule{
	{Extensions: []string{".html", ".htm"}, Type: "text/html"},
	{Extensions: []string{".jpg", ".jpeg"}, Type: "image/jpeg"},
	{Extensions: []string{".png"}, Type: "image/png"},
	{Extensions: []string{".gif"}, Type: "image/gif"},
	{Extensions: []string{".zip"}, Type: "application/zip"},
	{Extensions: []string{".css"}, Type: "text/css"},
	{Extensions: []string{".json"}, Type: "application/json"},
	{Extensions: []string{".js"}, Type: "application/javascript"},
	{Extensions: []string{".pdf"}, Type: "application/pdf"},
	{Extensions: []string{".txt", ".py", ".c", ".h"}, Type: "text/plain"},
}

// TypeOf returns the content type for name.
//
// Matching is substring containment rather than suffix comparison:
// "foo.html.bak" resolves to text/html. Names matching no rule get Default.
func TypeOf(name string) string {
	for _, r := range Rules {
		for _, ext := range r.Extensions {
			if strings.Contains(name, ext) {
				return r.Type
			}
		}
	}
	return Default
}
