package nativeplan

import "slices"

// Host gives the rewriter access to the configuration of the build tool
// it runs inside. The real boundary is a plugin API; here it is modeled
// as an explicit dependency injected at construction time.
type Host interface {
	// BuildOutputDir returns the absolute path of the host build's
	// output directory, under which the compiled native executable is
	// expected.
	BuildOutputDir() string

	// Container returns the host's container image configuration.
	// It returns a HostIntegrationError when the upstream container
	// configuration cannot be located in the host project.
	Container() (ContainerConfig, error)

	// NativeBuild returns the native compiler integration's own
	// configuration, and false when no such integration is configured.
	NativeBuild() (NativeBuild, bool)
}

// ContainerConfig exposes the image settings the host build tool was
// configured with. An empty string or nil slice means unset.
type ContainerConfig interface {
	// AppRoot is the configured in-image application root directory.
	AppRoot() string

	// MainClass is the configured main entry identifier.
	MainClass() string

	// Entrypoint is the caller-configured entrypoint override.
	Entrypoint() []string
}

// NativeBuild exposes the named binary configurations of the host's
// native compiler integration.
type NativeBuild interface {
	// Binary returns the configuration of the named binary, and false
	// when no binary with that name is configured.
	Binary(name string) (BinaryConfig, bool)
}

// BinaryConfig is the configuration of a single native binary.
type BinaryConfig struct {
	// MainClass is the entry identifier the binary is built from. The
	// compiler uses it as the executable name when no explicit image
	// name is set.
	MainClass string
}

// StaticHost is a Host backed by plain values. It is the easiest way
// for a host integration (or a test) to hand configuration to the
// rewriter.
type StaticHost struct {
	// OutputDir is the host build's output directory.
	OutputDir string

	// ContainerMissing simulates a host project in which the upstream
	// container configuration is absent. When set, Container fails.
	ContainerMissing bool

	// Root, Main, and Entry populate the container configuration.
	Root  string
	Main  string
	Entry []string

	// Binaries maps binary names to their native-build configuration.
	// A nil map means the native compiler integration is not present.
	Binaries map[string]BinaryConfig
}

// BuildOutputDir implements Host.
func (h *StaticHost) BuildOutputDir() string { return h.OutputDir }

// Container implements Host.
func (h *StaticHost) Container() (ContainerConfig, error) {
	if h.ContainerMissing {
		return nil, &HostIntegrationError{Capability: "container configuration"}
	}
	return staticContainer{h}, nil
}

// NativeBuild implements Host.
func (h *StaticHost) NativeBuild() (NativeBuild, bool) {
	if h.Binaries == nil {
		return nil, false
	}
	return staticNativeBuild{h}, true
}

type staticContainer struct{ h *StaticHost }

func (c staticContainer) AppRoot() string      { return c.h.Root }
func (c staticContainer) MainClass() string    { return c.h.Main }
func (c staticContainer) Entrypoint() []string { return slices.Clone(c.h.Entry) }

type staticNativeBuild struct{ h *StaticHost }

func (n staticNativeBuild) Binary(name string) (BinaryConfig, bool) {
	cfg, ok := n.h.Binaries[name]
	return cfg, ok
}
