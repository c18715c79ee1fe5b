// Package observe instruments the credential pipeline.
//
// It wraps each pipeline stage (classify, ensure, resolve, read) with an
// OpenTelemetry span named credops.<stage>, stage counters and a duration
// histogram, and a JSON log line. Log fields that may carry credential
// material are redacted before they are written.
//
// Nothing here performs credential work itself; the secret package wires an
// Observer into its Pipeline.
package observe
