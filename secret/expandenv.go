package secret

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/jonwraymond/credops/envkind"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnvStrict expands environment variables in s using the process
// environment.
//
// Semantics:
//   - `$VAR` and `${VAR}` are expanded.
//   - `${VAR}` with VAR unset is an error; bare `$VAR` expands to "".
//   - `$$` emits a literal `$`.
func ExpandEnvStrict(s string) (string, error) {
	return ExpandEnviron(s, envkind.OSEnviron())
}

// ExpandEnviron is ExpandEnvStrict over env.
func ExpandEnviron(s string, env envkind.Environ) (string, error) {
	const dollarSentinel = "\x00CREDOPS_DOLLAR\x00"
	s = strings.ReplaceAll(s, "$$", dollarSentinel)

	lookup := func(key string) (string, bool) {
		if env == nil {
			return "", false
		}
		return env(key)
	}

	missing := make(map[string]struct{})
	for _, match := range envVarPattern.FindAllStringSubmatch(s, -1) {
		if _, ok := lookup(match[1]); !ok {
			missing[match[1]] = struct{}{}
		}
	}
	if len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(keys, ", "))
	}

	s = os.Expand(s, func(key string) string {
		v, _ := lookup(key)
		return v
	})
	return strings.ReplaceAll(s, dollarSentinel, "$"), nil
}
