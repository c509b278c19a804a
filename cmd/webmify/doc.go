// Command webmify converts videos to WebM, either one file at a time or as a
// parallel batch over a directory tree.
package main
