package credential

import (
	"fmt"
	"strings"

	"github.com/jonwraymond/credops/envkind"
)

// Strategy is how a credential is obtained for one environment kind. It is
// either a BootstrapStrategy or a KeyfileStrategy.
type Strategy interface {
	// ConfigKey is the config option the strategy consumes.
	ConfigKey() string
	isStrategy()
}

// BootstrapStrategy reads service-account JSON from a secret using ambient
// credentials.
type BootstrapStrategy struct {
	SecretID string
}

func (BootstrapStrategy) ConfigKey() string { return KeyBootstrapSecretID }
func (BootstrapStrategy) isStrategy()       {}

// KeyfileStrategy reads service-account JSON from a file.
type KeyfileStrategy struct {
	Key  string
	Path string
}

func (s KeyfileStrategy) ConfigKey() string { return s.Key }
func (KeyfileStrategy) isStrategy()         {}

// StrategyFor selects the strategy for kind. It returns the config keys that
// are set but ignored for this kind.
func (c *Config) StrategyFor(kind envkind.Kind) (Strategy, []string, error) {
	bootstrap := strings.TrimSpace(c.BootstrapSecretID)
	colab := strings.TrimSpace(c.ColabKeyfile)
	local := strings.TrimSpace(c.LocalKeyfile)

	ignored := func(pairs ...string) []string {
		var keys []string
		for i := 0; i+1 < len(pairs); i += 2 {
			if pairs[i+1] != "" {
				keys = append(keys, pairs[i])
			}
		}
		return keys
	}

	if !kind.Valid() {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}

	switch kind {
	case envkind.GCPNative:
		if bootstrap == "" {
			return nil, nil, &BootstrapSecretNotFoundError{}
		}
		return BootstrapStrategy{SecretID: bootstrap},
			ignored(KeyColabKeyfile, colab, KeyLocalKeyfile, local), nil
	case envkind.HostedNotebook:
		if colab == "" {
			return nil, nil, &KeyfilePathMissingError{Key: KeyColabKeyfile, Kind: kind.String()}
		}
		return KeyfileStrategy{Key: KeyColabKeyfile, Path: colab},
			ignored(KeyBootstrapSecretID, bootstrap, KeyLocalKeyfile, local), nil
	default:
		if local == "" {
			return nil, nil, &KeyfilePathMissingError{Key: KeyLocalKeyfile, Kind: kind.String()}
		}
		return KeyfileStrategy{Key: KeyLocalKeyfile, Path: local},
			ignored(KeyBootstrapSecretID, bootstrap, KeyColabKeyfile, colab), nil
	}
}
