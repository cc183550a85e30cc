// Package core implements dirsum's operations: scanning a tree into a
// digest and manifest, verifying a tree against a stored manifest, and
// diffing two stored manifests. The command layer calls only this
// package; everything below it is wiring.
package core
