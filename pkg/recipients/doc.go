// Package recipients loads and validates tabular recipient lists.
//
// A list is any table whose header row contains Name and Email columns; an
// optional Company column fills the third personalization field. Rows without
// an email address are silently dropped, everything else passes through in
// original order. Loading is read-only and produces immutable records.
package recipients
