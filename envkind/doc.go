// Package envkind labels the execution context of the current process.
//
// The label is derived from environment variables only: a Google Cloud
// project variable means a managed runtime, a hosted-notebook marker means a
// Colab style kernel, and anything else is a local workstation unless the
// caller's configuration says otherwise. Classification is a pure function of
// the environment snapshot passed in; it never touches the network.
//
// A Kind is a routing decision, not an identifier. It must never be used as a
// Google Cloud project id; see IsReservedLabel.
package envkind
