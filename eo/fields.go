package eo

// Namespace is the extension identifier prefixed to every EO property key
const Namespace = "eo"

// EO field names, in the order they are read and written
const (
	FieldGSD           = "gsd"
	FieldPlatform      = "platform"
	FieldInstrument    = "instrument"
	FieldBands         = "bands"
	FieldConstellation = "constellation"
	FieldEPSG          = "epsg"
	FieldCloudCover    = "cloud_cover"
	FieldOffNadir      = "off_nadir"
	FieldAzimuth       = "azimuth"
	FieldSunAzimuth    = "sun_azimuth"
	FieldSunElevation  = "sun_elevation"
)

// BandsKey is the namespaced key of the band list on items and of the band
// indices on assets
const BandsKey = Namespace + ":" + FieldBands

// Fields lists every EO field name
var Fields = []string{
	FieldGSD,
	FieldPlatform,
	FieldInstrument,
	FieldBands,
	FieldConstellation,
	FieldEPSG,
	FieldCloudCover,
	FieldOffNadir,
	FieldAzimuth,
	FieldSunAzimuth,
	FieldSunElevation,
}

// RequiredFields lists the fields every EO item must carry
var RequiredFields = []string{FieldGSD, FieldPlatform, FieldInstrument, FieldBands}

// Key returns the namespaced property key of an EO field, e.g. "eo:gsd"
func Key(field string) string {
	return Namespace + ":" + field
}

func isRequired(field string) bool {
	for _, required := range RequiredFields {
		if field == required {
			return true
		}
	}
	return false
}
