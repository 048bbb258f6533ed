// Package graphfile loads a materialized dependency graph from an HCL graph
// file and locates that file for a script directory, a script file or a
// precompiled artifact.
//
// A graph file is what the external restore step leaves behind. It is read
// as-is; nothing in this package restores packages or touches the network.
//
//	target_framework = "net8.0"
//	package_folders  = ["${project_dir}/packages"]
//
//	library "Newtonsoft.Json" "13.0.1" {
//	  path = "newtonsoft.json/13.0.1"
//
//	  runtime_assembly {
//	    paths = ["lib/netstandard2.0/Newtonsoft.Json.dll"]
//	  }
//	}
//
// Expressions may reference `project_dir`, `global_packages` and `env.<NAME>`.
package graphfile
