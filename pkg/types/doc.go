// Package types holds the shared domain types of dirsum: the entry
// model for filesystem objects, the capability interfaces the hashing
// engine consumes, and the node model that manifests serialize.
//
// Keeping these in one leaf package lets the engine, the manifest
// layer, and the commands share them without import cycles.
package types
