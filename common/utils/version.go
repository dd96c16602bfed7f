package utils

// Set at build time with -ldflags "-X github.com/yosytuvy/agario/common/utils.version=..."
var version = "dev"

func GetVersion() string {
	return version
}
