// Package interfaces holds the contracts shared between the deck runtime and
// host applications. Only the logging surface lives here; domain contracts are
// declared next to the packages that consume them.
package interfaces
