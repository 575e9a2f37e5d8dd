// Package cli provides the output helpers of the capgate command line.
//
// Printer renders categories, search results and server health as
// go-pretty tables (table and wide formats) or indented JSON. FetchHealth
// queries a running server's /healthz endpoint, classifying connection
// failures into ConnectionError values with guidance.
package cli
