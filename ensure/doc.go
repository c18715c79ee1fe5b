// Package ensure makes the secret-store client available before use.
//
// An Ensurer probes for the client, installs it when the probe fails and
// probes exactly once more. If the second probe also fails it returns a
// *DependencyInstallError naming the package and the underlying error.
//
// ForBackends(secretstore.DefaultBackends, logger), the pipeline's default,
// probes that registry and installs the Secret Manager client factory there. That registry is the only
// process-wide state the credential pipeline mutates, and installing into
// it is idempotent: once the probe succeeds the installer is never called.
package ensure
