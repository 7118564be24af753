// Package importer rebuilds the locale data tree from its upstream sources:
// NVDA symbol dictionaries, CLDR emoji annotations and the Unicode character
// database.
package importer

// DocHeader is prepended to every generated dictionary file.
const DocHeader = `# This file was automatically generated by sdlocale import
# DO NOT MODIFY IT!
# See locale/README.md to know how to import dictionaries
`
