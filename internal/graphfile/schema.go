package graphfile

// fileRoot decodes every top-level construct of a graph file.
type fileRoot struct {
	TargetFramework string          `hcl:"target_framework,optional"`
	PackageFolders  []string        `hcl:"package_folders,optional"`
	Libraries       []*libraryBlock `hcl:"library,block"`
}

// libraryBlock is the HCL schema of a `library "<name>" "<version>"` block.
type libraryBlock struct {
	Name              string        `hcl:"name,label"`
	Version           string        `hcl:"version,label"`
	Path              string        `hcl:"path,optional"`
	ScriptPath        string        `hcl:"script_path,optional"`
	RuntimeAssemblies []*groupBlock `hcl:"runtime_assembly,block"`
	NativeLibraries   []*groupBlock `hcl:"native_library,block"`
}

// groupBlock is the HCL schema of a `runtime_assembly` or `native_library`
// block.
type groupBlock struct {
	RID   string   `hcl:"rid,optional"`
	Paths []string `hcl:"paths"`
}
