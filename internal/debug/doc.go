// Package debug provides the structured logger shared by the ace packages.
//
// Output goes to stderr at warn level by default. When the ACE_DEBUG
// environment variable is set to a file path, messages at debug level are
// appended to that file instead.
package debug
