package nativeplan

// PropertyImageName is the property key carrying an explicit executable
// name override.
const PropertyImageName = "imageName"

// mainBinaryName is the binary the native compiler integration builds
// by default; its main class doubles as the executable name when
// nothing else is configured.
const mainBinaryName = "main"

// nameSource is one source of the executable name. It returns "" when
// the source has no answer.
type nameSource func() string

// resolveExecutableName determines the native executable's name from an
// ordered list of sources, first non-empty wins: the explicit property
// override, then the container configuration's main identifier, then
// the native build tool's own "main" binary configuration.
func resolveExecutableName(properties map[string]string, container ContainerConfig, host Host) (string, error) {
	sources := []nameSource{
		func() string { return properties[PropertyImageName] },
		container.MainClass,
		func() string {
			nb, ok := host.NativeBuild()
			if !ok {
				return ""
			}
			bin, ok := nb.Binary(mainBinaryName)
			if !ok {
				return ""
			}
			return bin.MainClass
		},
	}

	for _, source := range sources {
		if name := source(); name != "" {
			return name, nil
		}
	}

	return "", &ConfigurationError{
		Msg: "cannot auto-detect native executable name; consider setting the '" + PropertyImageName + "' property",
	}
}
