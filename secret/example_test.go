package secret_test

import (
	"fmt"

	"github.com/jonwraymond/credops/secret"
)

func ExampleParseSecretRef() {
	provider, ref, ok := secret.ParseSecretRef("secretref:gsm:projects/proj-123/secrets/hubspot_token/versions/2")
	fmt.Println(provider, ref, ok)

	_, _, ok = secret.ParseSecretRef("plain-value")
	fmt.Println(ok)
	// Output:
	// gsm projects/proj-123/secrets/hubspot_token/versions/2 true
	// false
}
