// Package notice provides the file-system-backed machinery behind notice
// generation: template validation, the versioned template registry, the
// fingerprint render cache, and the per-format merge engines.
package notice
