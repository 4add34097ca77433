package manifest

// DependencyKind identifies one of the manifest's dependency blocks.
type DependencyKind string

// Dependency blocks recognized by the checker.
const (
	KindDependencies         DependencyKind = "dependencies"
	KindDevDependencies      DependencyKind = "devDependencies"
	KindPeerDependencies     DependencyKind = "peerDependencies"
	KindOptionalDependencies DependencyKind = "optionalDependencies"
)

// DependencyKinds lists every dependency block in manifest order; per-manifest
// rules iterate this list.
var DependencyKinds = []DependencyKind{
	KindDependencies,
	KindDevDependencies,
	KindPeerDependencies,
	KindOptionalDependencies,
}

// IndexedDependencyKinds lists the blocks that feed the cross-package
// dependency index.
var IndexedDependencyKinds = []DependencyKind{
	KindDependencies,
	KindDevDependencies,
}
