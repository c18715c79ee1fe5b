package credential

import (
	"strings"

	"github.com/jonwraymond/credops/envkind"
)

func checkProjectID(kind envkind.Kind, id, emptyReason string) error {
	reason := envkind.ValidateProjectID(id)
	if reason == "" {
		return nil
	}
	if strings.TrimSpace(id) == "" {
		return &ProjectIDUnresolvedError{Kind: kind.String(), Reason: emptyReason}
	}
	return &ProjectIDUnresolvedError{Kind: kind.String(), Candidate: id, Reason: reason}
}
