// Command texbake turns vendor texture archives into game-ready material
// directories: it extracts each zip, normalizes the texture maps, packs the
// metal/roughness channels, and writes a material manifest.
package main
