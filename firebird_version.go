package fbgenkeys

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidVersion = errors.New("invalid Firebird version string")

// EngineVersionPattern matches rdb$get_context('SYSTEM', 'ENGINE_VERSION').
var EngineVersionPattern = regexp.MustCompile(`^\s*(\d+)\.(\d+)(?:\.(\d+))?`)

type FirebirdVersion struct {
	Full  string
	Major int
	Minor int
	Patch int
}

func ParseEngineVersion(engineVersion string) (FirebirdVersion, error) {
	res := EngineVersionPattern.FindStringSubmatch(engineVersion)
	if res == nil {
		return FirebirdVersion{}, errors.Wrapf(ErrInvalidVersion, "%q", engineVersion)
	}
	major, _ := strconv.Atoi(res[1])
	minor, _ := strconv.Atoi(res[2])
	patch, _ := strconv.Atoi(res[3])
	return FirebirdVersion{
		Full:  strings.TrimSpace(engineVersion),
		Major: major,
		Minor: minor,
		Patch: patch}, nil
}

func (v FirebirdVersion) EqualOrGreater(major int, minor int) bool {
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

func (v FirebirdVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
