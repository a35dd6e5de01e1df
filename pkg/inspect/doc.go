// Package inspect reads identifying information out of candidate plugin
// binaries without loading or executing them.
//
// Two inspections are provided: extraction of the embedded metadata blob
// (see pluginapi.MetadataMarker) and detection of native or
// foreign-architecture libraries via their PE headers. Both are deliberately
// forgiving: a malformed or unreadable file is reported as "no metadata" or
// "not native" rather than failing the surrounding directory scan.
package inspect
