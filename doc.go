// Package discogen turns API discovery documents into Go client library and
// CLI projects.
//
// This package holds the generation framework: an [Emitter] produces
// [Artifact] values from one input, a [Pipeline] runs emitters in order and
// collects their output in a [Tree], and a Tree is written to (or checked
// against) a directory on disk.
//
// The discovery-specific pieces live in subpackages: discovery loads the
// document, apidesc derives the naming model, generator assembles the
// pipeline. tokensource is the token capability generated clients use and
// clisupport is the runtime generated CLIs share.
package discogen

// version is the release of this module. Generated projects pin it, since
// they import tokensource and clisupport from here.
const version = "0.1.0"

// Version returns the discogen release version, without a "v" prefix.
func Version() string {
	return version
}
