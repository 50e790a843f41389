package nativeplan

import (
	"fmt"

	"github.com/containerd/errdefs"
)

// component identifies this extension in error messages surfaced by the
// host build tool.
const component = "native-image rewriter"

// ConfigurationError indicates the rewrite cannot proceed until the
// user supplies missing configuration. It wraps
// [errdefs.ErrInvalidArgument] so hosts can classify it without
// importing this package's types.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", component, e.Msg)
}

func (e *ConfigurationError) Unwrap() error { return errdefs.ErrInvalidArgument }

// MissingArtifactError indicates a build artifact the rewrite depends
// on does not exist, usually because a build step has not run. It wraps
// [errdefs.ErrNotFound].
type MissingArtifactError struct {
	// Path is the expected location of the artifact.
	Path string

	// Hint names the build step that produces the artifact.
	Hint string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s: native executable does not exist or is not a regular file: %s (did you run %s?)", component, e.Path, e.Hint)
}

func (e *MissingArtifactError) Unwrap() error { return errdefs.ErrNotFound }

// HostIntegrationError indicates a collaborator the rewrite requires is
// not present in the host project, a setup or ordering problem. It
// wraps [errdefs.ErrFailedPrecondition].
type HostIntegrationError struct {
	// Capability names the missing host capability.
	Capability string
}

func (e *HostIntegrationError) Error() string {
	return fmt.Sprintf("%s: required host %s not found", component, e.Capability)
}

func (e *HostIntegrationError) Unwrap() error { return errdefs.ErrFailedPrecondition }
