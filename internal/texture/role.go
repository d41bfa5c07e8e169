package texture

// Role identifies the material channel a texture file feeds.
type Role int

const (
	RoleUnknown Role = iota
	RoleAmbientOcclusion
	RoleColor
	RoleDisplacement
	RoleNormal
	RoleMetalness
	RoleRoughness
)

func (r Role) String() string {
	switch r {
	case RoleAmbientOcclusion:
		return "ambient-occlusion"
	case RoleColor:
		return "color"
	case RoleDisplacement:
		return "displacement"
	case RoleNormal:
		return "normal"
	case RoleMetalness:
		return "metalness"
	case RoleRoughness:
		return "roughness"
	default:
		return "unknown"
	}
}

// Classification describes how a classified file must be handled.
type Classification int

const (
	// ClassNone marks an unrecognized suffix; the file is extraneous.
	ClassNone Classification = iota
	// ClassIndependent marks a file processed on its own.
	ClassIndependent
	// ClassDependent marks a file that must be buffered until all files are
	// seen, because it combines with a sibling during packing.
	ClassDependent
)

// Bake carries the processing recipe for an independent role: the canonical
// output basename, the manifest lines the role contributes, and an optional
// pixel encoding the output must use.
type Bake struct {
	Role        Role
	Output      string
	ConfigLines []string
	Required    Encoding
}

// Classify maps a filename suffix (the stem minus the shared prefix) to its
// role recipe. The mapping is exact and case-sensitive; unknown suffixes are
// not errors, they mark the file for deletion.
func Classify(suffix string) (Bake, Classification) {
	switch suffix {
	case "AmbientOcclusion":
		return Bake{
			Role:        RoleAmbientOcclusion,
			Output:      "ao",
			ConfigLines: []string{"ao = true"},
		}, ClassIndependent
	case "Color":
		return Bake{
			Role:   RoleColor,
			Output: "color",
		}, ClassIndependent
	case "Displacement":
		return Bake{
			Role:        RoleDisplacement,
			Output:      "depth",
			ConfigLines: []string{"depth = 0.01", "depth_method = 8"},
		}, ClassIndependent
	case "NormalGL":
		return Bake{
			Role:        RoleNormal,
			Output:      "normal",
			ConfigLines: []string{`normal = "OpenGL"`},
			Required:    EncodingRGB16,
		}, ClassIndependent
	case "Metalness":
		return Bake{Role: RoleMetalness}, ClassDependent
	case "Roughness":
		return Bake{Role: RoleRoughness}, ClassDependent
	default:
		return Bake{}, ClassNone
	}
}
