package diorama

// MaterialKind identifies the shading model a classified node uses. Shading
// itself happens in the renderer; the core only picks and parameterizes.
type MaterialKind uint8

const (
	MaterialDefault MaterialKind = iota
	MaterialRoom                 // day/night texture-set blend
	MaterialGlass                // transmissive, environment mapped
	MaterialWater                // translucent tint
	MaterialScreen               // video feed
	MaterialEmissive             // light bulb
	MaterialSmoke                // scrolling perlin smoke
)

// Material is the parameter block assigned to a node. Shared materials are
// referenced by many nodes; per-node materials are owned by one.
type Material struct {
	Kind MaterialKind
	Name string

	// TextureSet is the 1-based texture set index for MaterialRoom.
	TextureSet int
	// MixRatio blends day (0) and night (1) textures.
	MixRatio float64

	Color    Color
	Opacity  float64
	Emissive Color
	// EmissiveIntensity also drives the attached point light.
	EmissiveIntensity float64

	Channel ScreenChannel
	// Time feeds animated materials (smoke).
	Time float64
}

// MaterialLibrary holds the shared materials handed out during
// classification. One library belongs to one scene.
type MaterialLibrary struct {
	Room  []*Material // indexed by texture set - 1
	Glass *Material
	Smoke *Material

	// owned collects every per-node material created during classification.
	owned []*Material
}

// NewMaterialLibrary creates the shared room, glass, and smoke materials for
// the given texture-set names (in set order).
func NewMaterialLibrary(textureSets []string) *MaterialLibrary {
	lib := &MaterialLibrary{
		Glass: &Material{Kind: MaterialGlass, Name: "glass", Color: Hex(0xfbfbfb), Opacity: 1},
		Smoke: &Material{Kind: MaterialSmoke, Name: "smoke", Color: ColorWhite, Opacity: 1},
	}
	for i, name := range textureSets {
		lib.Room = append(lib.Room, &Material{
			Kind:       MaterialRoom,
			Name:       name,
			TextureSet: i + 1,
			Color:      ColorWhite,
			Opacity:    1,
		})
	}
	return lib
}

// water creates a per-node water material.
func (l *MaterialLibrary) water(c Color) *Material {
	m := &Material{Kind: MaterialWater, Name: "water", Color: c, Opacity: 0.4}
	l.owned = append(l.owned, m)
	return m
}

// screen creates a per-node video material.
func (l *MaterialLibrary) screen(ch ScreenChannel) *Material {
	opacity := 0.9
	if ch == ScreenPhone {
		opacity = 1
	}
	m := &Material{Kind: MaterialScreen, Name: "screen", Channel: ch, Color: ColorWhite, Opacity: opacity}
	l.owned = append(l.owned, m)
	return m
}

// bulb creates a per-node emissive material.
func (l *MaterialLibrary) bulb() *Material {
	m := &Material{
		Kind:              MaterialEmissive,
		Name:              "bulb",
		Color:             Hex(0xffcc88),
		Emissive:          Hex(0xffaa33),
		EmissiveIntensity: 1.5,
		Opacity:           1,
	}
	l.owned = append(l.owned, m)
	return m
}

// Waters returns every water material handed out.
func (l *MaterialLibrary) Waters() []*Material {
	var out []*Material
	for _, m := range l.owned {
		if m.Kind == MaterialWater {
			out = append(out, m)
		}
	}
	return out
}
