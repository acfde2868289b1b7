// Package utils provides small helpers shared across packages that do not belong
// to a domain package, such as converting loosely typed database values.
package utils
