// Package placeholder implements allow-list substitution of personalization
// tokens in message templates.
//
// Only two placeholders are recognized: {name} and {company}. Any other
// {token} occurrence is rejected with ErrUnknownPlaceholder, which lets
// callers validate a template once, up front, instead of discovering a typo
// on whichever recipient happens to trigger it mid-batch.
package placeholder
