// Package resolver turns a materialized dependency graph into the runtime
// assets a script host loads: managed assemblies, native libraries and
// bundled script files, one RuntimeDependency record per library.
//
// Selection rules:
//
//   - Managed assemblies use best match. The group tagged with the exact
//     runtime identifier wins, then the runtime-agnostic group, otherwise the
//     library contributes no assemblies.
//   - Native libraries are inclusive. Every group whose tag is compatible with
//     the current platform and architecture contributes its assets.
//   - Script files are only looked up when running from restored source. A
//     compiled artifact already contains them.
//
// Asset paths ending in the placeholder marker are skipped. Every other asset
// of a selected group must exist under one of the package folders, otherwise
// the whole resolution fails with an *fsutil.AssetNotFoundError.
package resolver
