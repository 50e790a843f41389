package nativeplan

import (
	"os"
	"path"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	// NativeImageLayerName is the name of the synthetic layer carrying
	// the native executable.
	NativeImageLayerName = "native image"

	// ExtraFilesLayerPrefix identifies the layer family holding
	// user-declared additional files. Layers in this family are carried
	// over by the rewrite unchanged.
	ExtraFilesLayerPrefix = "extra files"

	// DefaultAppRoot is the in-image application root used when the
	// host does not configure one.
	DefaultAppRoot = "/app"

	// defaultCompileStage is the build-output subdirectory the native
	// compiler writes executables to.
	defaultCompileStage = "nativeCompile"

	// executableMode is the permission bits of the executable inside
	// the image.
	executableMode = 0o755
)

// Rewriter rewrites build plans so the image carries a single locally
// compiled native executable instead of the layers the upstream library
// assembled. Construct it with [NewRewriter].
type Rewriter struct {
	host         Host
	log          logrus.FieldLogger
	compileStage string
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithLogger sets the logger used for the rewrite's informational
// output. The default is the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Rewriter) { r.log = log }
}

// WithCompileStage overrides the build-output subdirectory the compiled
// executable is looked up under ("nativeCompile" by default).
func WithCompileStage(stage string) Option {
	return func(r *Rewriter) { r.compileStage = stage }
}

// NewRewriter returns a Rewriter bound to the given host.
func NewRewriter(host Host, opts ...Option) *Rewriter {
	r := &Rewriter{
		host:         host,
		log:          logrus.StandardLogger(),
		compileStage: defaultCompileStage,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Rewrite returns a new plan whose layers are replaced by a single
// layer carrying the host's compiled native executable, plus any
// extra-files layers from the input, and whose entrypoint runs that
// executable unless the caller already configured one.
//
// properties carries caller-supplied overrides; only
// [PropertyImageName] is consulted. config is reserved for
// extension-specific configuration and is unused by this rewrite.
//
// The input plan is never modified.
func (r *Rewriter) Rewrite(plan BuildPlan, properties map[string]string, config any) (BuildPlan, error) {
	r.log.Info("Running native-image build plan rewrite")

	container, err := r.host.Container()
	if err != nil {
		return BuildPlan{}, err
	}

	name, err := resolveExecutableName(properties, container, r.host)
	if err != nil {
		return BuildPlan{}, err
	}

	localExecutable := filepath.Join(r.host.BuildOutputDir(), "native", r.compileStage, name)
	fi, err := os.Stat(localExecutable)
	if err != nil || !fi.Mode().IsRegular() {
		return BuildPlan{}, &MissingArtifactError{
			Path: localExecutable,
			Hint: "the native compile step",
		}
	}

	appRoot := container.AppRoot()
	if appRoot == "" {
		appRoot = DefaultAppRoot
	}
	target := path.Join(appRoot, name)

	cloned := plan.Clone()
	out := BuildPlan{
		Entrypoint: cloned.Entrypoint,
		Metadata:   cloned.Metadata,
	}

	out.Layers = append(out.Layers, Layer{
		Name: NativeImageLayerName,
		Entries: []FileEntry{{
			Source:      localExecutable,
			Destination: target,
			Mode:        executableMode,
		}},
	})
	out.Layers = append(out.Layers, plan.LayersWithPrefix(ExtraFilesLayerPrefix)...)

	// A caller-configured entrypoint always wins over the synthetic one.
	if len(container.Entrypoint()) == 0 && !plan.HasEntrypoint() {
		out.Entrypoint = []string{target}
	}

	return out, nil
}
