// Package utils supplies shared configuration loading and logging primitives
// for the command-line application.
package utils
