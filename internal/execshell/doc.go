// Package execshell runs external git commands with bounded timeouts,
// captured output, structured logging, and typed failures that callers can
// treat as recoverable absences.
package execshell
