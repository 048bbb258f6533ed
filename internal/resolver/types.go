package resolver

import "github.com/vk/rtdeps/internal/assembly"

// RuntimeDependency is the resolved runtime view of one library.
type RuntimeDependency struct {
	Name         string            `json:"name" yaml:"name"`
	Version      string            `json:"version" yaml:"version"`
	Assemblies   []RuntimeAssembly `json:"assemblies" yaml:"assemblies"`
	NativeAssets []string          `json:"nativeAssets" yaml:"nativeAssets"`
	Scripts      []string          `json:"scripts" yaml:"scripts"`
}

// RuntimeAssembly pairs a managed assembly's identity with its absolute path.
type RuntimeAssembly struct {
	Identity assembly.Identity `json:"identity" yaml:"identity"`
	Path     string            `json:"path" yaml:"path"`
}
