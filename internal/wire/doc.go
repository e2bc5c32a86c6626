// Package wire holds the JSON shapes exchanged with the automation API.
//
// Field names follow the API's snake_case convention. Fields the API may omit
// or send as null are pointers so a missing value stays distinguishable from a
// zero value until the mapping package applies defaults.
package wire
