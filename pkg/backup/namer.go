package backup

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/lvim-tech/snapassist/pkg/imageformat"
)

// Filename placeholders.
const (
	PlaceholderTimestamp = "{timestamp}"
	PlaceholderDate      = "{date}"
	PlaceholderTime      = "{time}"
)

const (
	dateLayout = "%Y%m%d"
	timeLayout = "%H%M%S"
)

// sampleTime is rendered by NewNamer to check the timestamp format.
var sampleTime = time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC)

var placeholderRe = regexp.MustCompile(`\{(timestamp|date|time)\}`)

// Namer turns the configured filename template into backup file names.
type Namer struct {
	template        string
	timestampFormat string
	format          imageformat.Format
	match           *regexp.Regexp
}

// NewNamer returns a Namer for template. The template's extension is
// replaced by the one of format.
func NewNamer(template, timestampFormat string, format imageformat.Format) (*Namer, error) {
	if strings.TrimSpace(template) == "" {
		return nil, fmt.Errorf("empty backup filename template")
	}
	if strings.ContainsRune(template, filepath.Separator) {
		return nil, fmt.Errorf("backup filename template must not contain a path separator: %s", template)
	}
	if _, err := strftime.New(timestampFormat); err != nil {
		return nil, fmt.Errorf("invalid timestamp format %q: %w", timestampFormat, err)
	}

	base := strings.TrimSuffix(template, filepath.Ext(template))
	match, err := compileMatcher(base, timestampFormat, format.Extension())
	if err != nil {
		return nil, err
	}

	n := &Namer{
		template:        base,
		timestampFormat: timestampFormat,
		format:          format,
		match:           match,
	}

	// The timestamp must not turn the name into a path either.
	sample, err := n.Name(sampleTime)
	if err != nil {
		return nil, err
	}
	if strings.ContainsAny(sample, "/"+string(filepath.Separator)) {
		return nil, fmt.Errorf("backup file names must not contain a path separator: %s renders as %s", timestampFormat, sample)
	}

	return n, nil
}

// Name renders the file name for a capture taken at t.
func (n *Namer) Name(t time.Time) (string, error) {
	var renderErr error
	name := placeholderRe.ReplaceAllStringFunc(n.template, func(p string) string {
		layout := n.timestampFormat
		switch p {
		case PlaceholderDate:
			layout = dateLayout
		case PlaceholderTime:
			layout = timeLayout
		}

		s, err := strftime.Format(layout, t)
		if err != nil && renderErr == nil {
			renderErr = err
		}
		return s
	})
	if renderErr != nil {
		return "", fmt.Errorf("failed to render backup name: %w", renderErr)
	}

	return name + n.format.Extension(), nil
}

// Matches reports whether name looks like a file this Namer produced,
// including the _N suffix added on collisions.
func (n *Namer) Matches(name string) bool {
	return n.match.MatchString(name)
}

// withSuffix inserts _i before the extension of name.
func withSuffix(name string, i int) string {
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), i, ext)
}

// compileMatcher builds the pattern of the names produced for base. Each
// placeholder only accepts what its strftime layout can render, so files that
// merely share the literal parts of the template are not taken for backups.
func compileMatcher(base, timestampFormat, ext string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	last := 0
	for _, loc := range placeholderRe.FindAllStringIndex(base, -1) {
		b.WriteString(regexp.QuoteMeta(base[last:loc[0]]))

		layout := timestampFormat
		switch base[loc[0]:loc[1]] {
		case PlaceholderDate:
			layout = dateLayout
		case PlaceholderTime:
			layout = timeLayout
		}
		pattern, err := layoutPattern(layout)
		if err != nil {
			return nil, err
		}
		b.WriteString(pattern)

		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(base[last:]))
	b.WriteString(`(_\d+)?`)
	b.WriteString(regexp.QuoteMeta(ext))
	b.WriteString("$")

	return regexp.Compile(b.String())
}

const (
	word    = `[A-Za-z]+`
	abbrev  = `[A-Za-z]{3}`
	twoNum  = `\d{2}`
	padded  = `[ \d]\d`
	clock   = `\d{2}:\d{2}:\d{2}`
	ampm    = `[AaPp][Mm]`
	numDate = `\d{2}/\d{2}/\d{2}`
)

// verbPatterns maps each strftime verb to the text it can render.
var verbPatterns = map[byte]string{
	'A': word,
	'a': abbrev,
	'B': word,
	'b': abbrev,
	'C': twoNum,
	'c': abbrev + ` ` + abbrev + ` ` + padded + ` ` + clock + ` \d{4}`,
	'D': numDate,
	'd': twoNum,
	'e': padded,
	'F': `\d{4}-\d{2}-\d{2}`,
	'H': twoNum,
	'I': twoNum,
	'j': `\d{3}`,
	'k': padded,
	'l': padded,
	'M': twoNum,
	'm': twoNum,
	'n': `\n`,
	'p': ampm,
	'R': `\d{2}:\d{2}`,
	'r': clock + ` ` + ampm,
	'S': twoNum,
	'T': clock,
	't': `\t`,
	'U': twoNum,
	'u': `\d`,
	'V': twoNum,
	'v': padded + `-` + abbrev + `-\d{4}`,
	'W': twoNum,
	'w': `\d`,
	'X': clock,
	'x': numDate,
	'Y': `\d{4}`,
	'y': twoNum,
	'Z': `[A-Za-z0-9+-]+`,
	'z': `[+-]\d{4}`,
	'%': `%`,
}

// layoutPattern turns a strftime layout into a regular expression.
func layoutPattern(layout string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(layout); i++ {
		if layout[i] != '%' {
			j := strings.IndexByte(layout[i:], '%')
			if j < 0 {
				j = len(layout) - i
			}
			b.WriteString(regexp.QuoteMeta(layout[i : i+j]))
			i += j - 1
			continue
		}

		if i+1 >= len(layout) {
			return "", fmt.Errorf("invalid timestamp format %q: trailing %%", layout)
		}
		i++
		pattern, ok := verbPatterns[layout[i]]
		if !ok {
			return "", fmt.Errorf("invalid timestamp format %q: unsupported verb %%%c", layout, layout[i])
		}
		b.WriteString(pattern)
	}
	return b.String(), nil
}
