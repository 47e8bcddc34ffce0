package placeholder

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/mailblast/pkg/recipients"
)

// Recognized placeholder names.
const (
	Name    = "name"
	Company = "company"
)

// ErrUnknownPlaceholder indicates the template references a placeholder
// outside the recognized set.
var ErrUnknownPlaceholder = errors.New("unknown placeholder")

// tokenPattern matches {token} occurrences. Braces that do not form a valid
// token (e.g. "{ spaced }" or "{}") are treated as literal text.
var tokenPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Validate checks that every placeholder token in the template belongs to the
// recognized set ({name}, {company}). It returns ErrUnknownPlaceholder naming
// the first offending token. Run this before iterating recipients so a bad
// template never aborts a batch midway.
func Validate(template string) error {
	for _, m := range tokenPattern.FindAllStringSubmatch(template, -1) {
		switch m[1] {
		case Name, Company:
		default:
			return fmt.Errorf("%w: {%s}", ErrUnknownPlaceholder, m[1])
		}
	}
	return nil
}

// Render substitutes every {name} and {company} occurrence with the record's
// values. All other text, including embedded HTML markup, passes through
// unchanged. Rendering is deterministic: the same template and record always
// produce identical output.
func Render(template string, rec recipients.Record) (string, error) {
	if err := Validate(template); err != nil {
		return "", err
	}

	r := strings.NewReplacer(
		"{"+Name+"}", rec.Name,
		"{"+Company+"}", rec.Company,
	)
	return r.Replace(template), nil
}
