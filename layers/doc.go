// Package layers builds immutable descriptions of container image layers.
//
// A layer description is an ordered list of entries, each mapping a host
// filesystem path to an absolute path inside the container together with
// explicit permission bits and a modification time. Descriptions carry no
// file content; a downstream exporter reads each entry's source path when
// it serializes the layer into an archive. The package provides:
//
//   - An Entry value type pairing a source path with its container
//     destination, permissions, and modification time
//   - A Builder that accumulates entries one at a time or by recursive
//     directory expansion
//   - Pluggable permission and modification time policies with
//     reproducibility-preserving defaults
//   - Immutable Layer values that can be shared freely once built
//
// # Building Layers
//
// Flat additions record exactly one entry each:
//
//	layer := layers.NewBuilder().
//		SetName("config").
//		Add("/work/app.conf", unixpath.MustParse("/etc/app.conf")).
//		Build()
//
// Directory trees are expanded with AddRecursive, which appends one entry
// per node in pre-order (each directory before its contents):
//
//	b := layers.NewBuilder().SetName("static")
//	if err := b.AddRecursive("/work/static", unixpath.MustParse("/srv/static")); err != nil {
//		log.Fatal(err)
//	}
//	layer := b.Build()
//
// # Permissions and Modification Times
//
// Entries never inherit attributes from the build host. When no explicit
// value is given, permissions come from DefaultFilePermissionsProvider (644
// for files, 755 for directories, decided by node type rather than on-disk
// bits) and modification times from DefaultModificationTimeProvider (one
// second past the Unix epoch). Identical inputs therefore always produce
// identical layer contents. Both policies can be replaced per call through
// AddRecursiveWithProviders.
//
// # Immutability
//
// Build copies the accumulated entries into the returned Layer, and Layer
// accessors return copies, so a built Layer never changes. The Builder
// remains usable after Build and can keep accumulating entries without
// affecting earlier results.
//
// # Duplicates
//
// Several entries may target the same container path. They are all kept, in
// insertion order; collision resolution (typically last one wins during
// extraction) belongs to the consumer.
//
// # Error Handling
//
// Recursive expansion reports filesystem enumeration failures as
// *TraversalError values naming the directory that could not be listed.
// A failed expansion keeps the entries appended before the failure; callers
// that need all-or-nothing behavior should build into a fresh Builder and
// merge on success.
//
// # Thread Safety
//
// A Builder is not safe for concurrent use. A built Layer is immutable and
// safe for concurrent readers without synchronization.
package layers
