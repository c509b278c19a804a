// Package textutil provides pure string helpers for output naming.
package textutil
