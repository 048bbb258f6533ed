// Package depgraph defines the format-agnostic model of a materialized
// dependency graph: the ordered libraries a restore step produced, their
// runtime-assembly and native-library asset groups, and the package folders
// their assets live in.
//
// The Graph is the single source of truth for the resolver package. It is
// read-only once built. Concrete loaders, such as the HCL graph file loader,
// live in separate packages and implement the Loader interface.
package depgraph
