// Package source loads documents as page sequences.
//
// A document reaches the analyzer already rendered: each page is a raster
// image plus the text extracted for it. Two layouts are supported. A
// directory holds one image ("page-001.png") and one optional text sidecar
// ("page-001.txt") per page. A plain text file holds text only, split into
// pages on form feeds, and yields pages without images.
//
// Sources are forgiving about partial pages: a page missing its sidecar has
// empty text, a page missing its image has a blank one. Only a document
// yielding no pages at all is an error.
package source
