// Package connector provides clients for remote services the application talks to.
package connector
