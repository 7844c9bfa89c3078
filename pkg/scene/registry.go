package scene

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrUnknownScene is returned when no built-in scene has the requested name
var ErrUnknownScene = errors.New("scene: unknown scene")

// SceneInfo describes a built-in scene for listings
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Primitives  string `json:"primitives"`
}

type builtinScene struct {
	info  SceneInfo
	build func(random *rand.Rand) *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "random-spheres",
			DisplayName: "Random Spheres",
			Description: "Checkered ground with a grid of small diffuse, metal and glass spheres; diffuse ones move during the shutter",
			Primitives:  "~480 spheres",
		},
		build: NewRandomSpheresScene,
	},
	{
		info: SceneInfo{
			ID:          "two-spheres",
			DisplayName: "Two Spheres",
			Description: "Ground sphere and a unit diffuse sphere at the origin",
			Primitives:  "2 spheres",
		},
		build: NewTwoSpheresScene,
	},
	{
		info: SceneInfo{
			ID:          "glass-metal",
			DisplayName: "Glass and Metal",
			Description: "Diffuse, glass and fuzzy metal spheres under a glowing sphere",
			Primitives:  "7 spheres",
		},
		build: NewGlassMetalScene,
	},
}

// ListScenes returns every built-in scene in registration order
func ListScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		infos = append(infos, s.info)
	}
	return infos
}

// Names returns the IDs of every built-in scene
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		names = append(names, s.info.ID)
	}
	return names
}

// Lookup builds the named scene. random drives any randomized placement.
func Lookup(name string, random *rand.Rand) (*Scene, error) {
	for _, s := range builtinScenes {
		if s.info.ID == name {
			return s.build(random), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
}
