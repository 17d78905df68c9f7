// Package ui provides theme and color support for the command-line output.
// It defines the color schemes and the ANSI escape code accessors shared by
// the presenter and the progress display.
package ui
