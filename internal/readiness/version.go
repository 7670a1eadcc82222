package readiness

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/bjyadmin/installer/internal/errors"
)

// Version is a parsed interpreter version. Only the numeric prefix of each
// dot-separated component is kept, so "8.1.2-dev" parses as 8.1.2.
type Version struct {
	Major int    `json:"major"`
	Minor int    `json:"minor"`
	Patch int    `json:"patch"`
	Raw   string `json:"raw"`
}

// String returns the original version text.
func (v Version) String() string {
	return v.Raw
}

// ParseVersion parses "major[.minor[.patch]]". Missing components are zero.
// Components past the third are ignored.
func ParseVersion(raw string) (Version, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Version{}, apperrors.ValidationError(apperrors.ErrCodeVersionUnparsable, "empty version string")
	}

	parts := strings.SplitN(s, ".", 4)
	nums := [3]int{}
	for i := 0; i < len(parts) && i < 3; i++ {
		n, ok := numericPrefix(parts[i])
		if !ok {
			return Version{}, apperrors.ValidationError(apperrors.ErrCodeVersionUnparsable,
				fmt.Sprintf("cannot parse version %q", raw)).
				WithDetail("component", parts[i])
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2], Raw: s}, nil
}

// MustParseVersion is ParseVersion for trusted, validated input.
func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func numericPrefix(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Meets reports whether v satisfies min by major/minor only:
// a higher major always passes; an equal major needs minor >= min.Minor.
// Patch levels and pre-release suffixes are not compared.
func (v Version) Meets(min Version) bool {
	if v.Major != min.Major {
		return v.Major > min.Major
	}
	return v.Minor >= min.Minor
}

// CheckVersion evaluates raw against the configured minimum.
// An unparsable version fails the row.
func (c *Checker) CheckVersion(raw string) EnvironmentCheck {
	result := EnvironmentCheck{
		Name:        "version",
		Kind:        KindVersion,
		Requirement: c.versionRequirement(),
		Actual:      strings.TrimSpace(raw),
	}

	v, err := ParseVersion(raw)
	if err != nil {
		result.Status = StatusFail
		result.Detail = err.Error()
		if result.Actual == "" {
			result.Actual = "unknown"
		}
		return result
	}

	if v.Meets(c.minimum) {
		result.Status = StatusPass
	} else {
		result.Status = StatusFail
		result.Detail = fmt.Sprintf("%s is below %d.%d", v.Raw, c.minimum.Major, c.minimum.Minor)
	}
	return result
}
