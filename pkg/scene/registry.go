package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a registered scene for listings
type SceneInfo struct {
	ID          string `json:"id"`          // Name passed to Build
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Group       string `json:"group"` // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// Builder constructs a scene from options
type Builder func(opts Options) (*Scene, error)

type entry struct {
	description string
	group       string
	build       Builder
}

var registry = map[string]entry{
	"book-one": {
		description: "Random small spheres around three large ones under a glowing sky sphere",
		group:       "Spheres",
		build:       NewBookOneScene,
	},
	"textures": {
		description: "Checker ground with checker, image and metal textured spheres",
		group:       "Spheres",
		build:       NewTexturesScene,
	},
	"cornell": {
		description: "Cornell box with two rotated boxes and a ceiling light",
		group:       "Cornell Box",
		build:       NewCornellScene,
	},
	"cornell-smoke": {
		description: "Cornell box with the boxes replaced by white and black smoke",
		group:       "Cornell Box",
		build:       NewCornellSmokeScene,
	},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named scene
func Build(name string, opts Options) (*Scene, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}

	s, err := e.build(opts)
	if err != nil {
		return nil, fmt.Errorf("scene: build %s: %w", name, err)
	}
	s.Name = name
	s.Description = e.description
	return s, nil
}

// Info returns the listing entry for a registered scene
func Info(name string) (SceneInfo, bool) {
	e, ok := registry[name]
	if !ok {
		return SceneInfo{}, false
	}
	return SceneInfo{
		ID:          name,
		DisplayName: titleCase(name),
		Description: e.description,
		Group:       e.group,
	}, true
}

// ListAllScenes returns every registered scene, grouped by category with
// groups and scenes in alphabetical order
func ListAllScenes() ScenesResponse {
	groupMap := make(map[string][]SceneInfo)
	for _, name := range Names() {
		info, _ := Info(name)
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	groupNames := make([]string, 0, len(groupMap))
	for groupName := range groupMap {
		groupNames = append(groupNames, groupName)
	}
	sort.Strings(groupNames)

	var response ScenesResponse
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}
	return response
}

// titleCase converts a scene name to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
