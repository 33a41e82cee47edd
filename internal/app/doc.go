// Package app wires the textbook RSA components into application services:
// the signing oracle with its query journal and the forgery run against it.
package app
