package executor

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

var antVersionPattern = regexp.MustCompile(`version\s+v?(\d+(?:\.\d+){0,2})`)

const versionCheckTimeout = time.Minute

// ParseAntVersion extracts the version from `ant -version` output such as
// "Apache Ant(TM) version 1.10.14 compiled on August 16 2023".
func ParseAntVersion(output string) (*semver.Version, error) {
	m := antVersionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("no version found in %q", strings.TrimSpace(output))
	}
	return semver.NewVersion(m[1])
}

// minimumConstraint accepts either a bare version ("1.8") or a constraint expression (">= 1.8, < 2").
func minimumConstraint(minimum string) (*semver.Constraints, error) {
	expr := strings.TrimSpace(minimum)
	if expr != "" && expr[0] >= '0' && expr[0] <= '9' {
		expr = ">= " + expr
	}
	return semver.NewConstraint(expr)
}

// CheckAntVersion runs `<binary> -version` and verifies the reported version satisfies minimum.
func CheckAntVersion(ctx context.Context, runner CommandRunner, dir, binary, minimum string) (*semver.Version, error) {
	constraint, err := minimumConstraint(minimum)
	if err != nil {
		return nil, &VersionError{Required: minimum, Err: err}
	}

	res, err := runner.Run(ctx, dir, Command{Name: binary, Args: []string{"-version"}}, nil, versionCheckTimeout)
	if err != nil {
		return nil, &VersionError{Required: minimum, Err: err}
	}

	found, err := ParseAntVersion(res.Output)
	if err != nil {
		return nil, &VersionError{Required: minimum, Err: err}
	}

	if !constraint.Check(found) {
		return found, &VersionError{Required: minimum, Found: found.String()}
	}
	return found, nil
}
