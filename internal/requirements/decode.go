package requirements

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/LCHCAPITALHUMAIN/ml-toast/model"
)

// ErrNotSpecifier is returned by Decode for lines that are pip options
// (-r, -e, --index-url, ...) rather than dependency specifiers.
var ErrNotSpecifier = errors.New("not a dependency specifier")

var (
	nameRegex          = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?`)
	inlineCommentRegex = regexp.MustCompile(`\s+#.*$`)
	normalizeRegex     = regexp.MustCompile(`[-_.]+`)
	clauseRegex        = regexp.MustCompile(`^(===|~=|==|!=|<=|>=|<|>)\s*(\S+)$`)
	releaseRegex       = regexp.MustCompile(`^\d+(\.\d+)*$`)
)

// Decode splits a specifier such as `pandas[excel]>=1.3,<2; python_version>"3.8"`
// into its name, extras, version specifier and environment marker.
func Decode(spec string) (model.Requirement, error) {
	req := model.Requirement{Raw: spec}

	s := strings.TrimSpace(inlineCommentRegex.ReplaceAllString(spec, ""))
	if s == "" || strings.HasPrefix(s, "-") {
		return req, fmt.Errorf("%q: %w", spec, ErrNotSpecifier)
	}

	if body, marker, ok := strings.Cut(s, ";"); ok {
		s = strings.TrimSpace(body)
		req.Marker = strings.TrimSpace(marker)
	}

	name := nameRegex.FindString(s)
	if name == "" {
		return req, fmt.Errorf("%q: %w", spec, ErrNotSpecifier)
	}
	req.Name = name
	rest := strings.TrimSpace(s[len(name):])

	if strings.HasPrefix(rest, "[") {
		end := strings.Index(rest, "]")
		if end < 0 {
			return req, fmt.Errorf("%q: unterminated extras", spec)
		}
		for _, extra := range strings.Split(rest[1:end], ",") {
			if extra = strings.TrimSpace(extra); extra != "" {
				req.Extras = append(req.Extras, extra)
			}
		}
		rest = strings.TrimSpace(rest[end+1:])
	}

	if strings.HasPrefix(rest, "@") {
		req.Specifier = rest
		return req, nil
	}

	rest = strings.TrimSuffix(strings.TrimPrefix(rest, "("), ")")
	req.Specifier = strings.Join(strings.Fields(rest), "")
	return req, nil
}

// Format renders r in the canonical PEP 508 form used by Requires-Dist:
// `name[extras]specifier; marker`, with comments and spacing dropped.
func Format(r model.Requirement) string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Extras) > 0 {
		b.WriteString("[" + strings.Join(r.Extras, ",") + "]")
	}
	if strings.HasPrefix(r.Specifier, "@") {
		b.WriteString(" ")
	}
	b.WriteString(r.Specifier)
	if r.Marker != "" {
		b.WriteString("; " + r.Marker)
	}
	return b.String()
}

// CanonicalName normalizes a project name so that "Foo_Bar" and "foo-bar" compare equal.
func CanonicalName(name string) string {
	return strings.ToLower(normalizeRegex.ReplaceAllString(name, "-"))
}

// Constraint translates the version specifier of r into a semver constraint.
// A requirement without a specifier yields a nil constraint, meaning any version.
func Constraint(r model.Requirement) (*semver.Constraints, error) {
	if r.Specifier == "" {
		return nil, nil
	}
	if strings.HasPrefix(r.Specifier, "@") {
		return nil, fmt.Errorf("%s: direct references have no version constraint", r.Name)
	}

	var clauses []string
	for _, clause := range strings.Split(r.Specifier, ",") {
		m := clauseRegex.FindStringSubmatch(clause)
		if m == nil {
			return nil, fmt.Errorf("%s: unsupported clause %q", r.Name, clause)
		}
		op, ver := m[1], m[2]
		switch op {
		case "==", "===":
			clauses = append(clauses, "="+padRelease(ver))
		case "~=":
			upper, err := compatibleUpperBound(ver)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", r.Name, err)
			}
			clauses = append(clauses, ">="+padRelease(ver), "<"+padRelease(upper))
		default:
			clauses = append(clauses, op+padRelease(ver))
		}
	}

	c, err := semver.NewConstraint(strings.Join(clauses, ", "))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.Name, err)
	}
	return c, nil
}

// padRelease zero-fills a short release ("1.4" -> "1.4.0") so that semver
// compares it exactly instead of treating the missing segments as wildcards.
func padRelease(ver string) string {
	if !releaseRegex.MatchString(ver) {
		return ver
	}
	for n := strings.Count(ver, "."); n < 2; n++ {
		ver += ".0"
	}
	return ver
}

// compatibleUpperBound returns the exclusive upper bound of a ~= clause:
// ~=1.4.2 allows up to 1.5 and ~=1.4 up to 2.
func compatibleUpperBound(ver string) (string, error) {
	parts := strings.Split(ver, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("~=%s needs at least two release segments", ver)
	}
	parts = parts[:len(parts)-1]
	last, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return "", fmt.Errorf("~=%s: %w", ver, err)
	}
	parts[len(parts)-1] = strconv.Itoa(last + 1)
	return strings.Join(parts, "."), nil
}

// Analyze decodes every specifier and reports problems as warnings: lines that
// are not specifiers, duplicate projects and specifiers with no semver reading.
func Analyze(specs []string) ([]model.Requirement, []string) {
	var (
		reqs     []model.Requirement
		warnings []string
		seen     = make(map[string]string)
	)

	for _, spec := range specs {
		req, err := Decode(spec)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("requirement skipped: %v", err))
			continue
		}

		key := CanonicalName(req.Name)
		if prev, ok := seen[key]; ok {
			warnings = append(warnings, fmt.Sprintf("requirement %q duplicates %q", spec, prev))
		} else {
			seen[key] = spec
		}

		if _, err := Constraint(req); err != nil {
			warnings = append(warnings, fmt.Sprintf("requirement %q has no semver reading: %v", spec, err))
		}
		reqs = append(reqs, req)
	}
	return reqs, warnings
}
