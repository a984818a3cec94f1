// Package cli implements the interactive terminal client for
// evidencekeeper: a REPL over the compliance backend with SSO session
// handling, evidence upload with progress display, AI verdict views, and
// an offline read cache.
package cli
