package rules

import "strings"

// SimilarDependencyFamily groups dependency names that are released together
// and must therefore carry the same version inside one manifest.
type SimilarDependencyFamily struct {
	Label    string
	Members  []string
	Prefixes []string
}

// Matches reports whether the dependency name belongs to this family.
func (family SimilarDependencyFamily) Matches(dependencyName string) bool {
	for _, member := range family.Members {
		if member == dependencyName {
			return true
		}
	}
	for _, prefix := range family.Prefixes {
		if strings.HasPrefix(dependencyName, prefix) {
			return true
		}
	}
	return false
}

// SimilarDependencyFamilies is the built-in catalog of co-released dependency
// groups consulted by the sync check.
func SimilarDependencyFamilies() []SimilarDependencyFamily {
	return []SimilarDependencyFamily{
		{
			Label:   "React",
			Members: []string{"react", "react-dom"},
		},
		{
			Label:    "Next.js",
			Members:  []string{"next"},
			Prefixes: []string{"@next/"},
		},
		{
			Label: "Turborepo",
			Members: []string{
				"turbo",
				"turbo-ignore",
				"eslint-config-turbo",
				"eslint-plugin-turbo",
				"@turbo/gen",
				"@turbo/workspaces",
			},
		},
		{
			Label: "Tanstack Query",
			Members: []string{
				"@tanstack/query-async-storage-persister",
				"@tanstack/query-broadcast-client-experimental",
				"@tanstack/query-core",
				"@tanstack/query-devtools",
				"@tanstack/query-persist-client-core",
				"@tanstack/query-sync-storage-persister",
				"@tanstack/react-query",
				"@tanstack/react-query-devtools",
				"@tanstack/react-query-persist-client",
				"@tanstack/react-query-next-experimental",
				"@tanstack/solid-query",
				"@tanstack/solid-query-devtools",
				"@tanstack/solid-query-persist-client",
				"@tanstack/svelte-query",
				"@tanstack/svelte-query-devtools",
				"@tanstack/svelte-query-persist-client",
				"@tanstack/vue-query",
				"@tanstack/vue-query-devtools",
			},
		},
	}
}
