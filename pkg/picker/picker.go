// Package picker integrates the external photo chooser. The rest of the
// system treats whatever it returns as an opaque reference string; image
// bytes are never read.
package picker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrCancelled reports that the user dismissed the picker without choosing.
var ErrCancelled = errors.New("picker: cancelled")

// ImagePicker yields one image reference per invocation: a chosen reference,
// ErrCancelled, or a failure to surface.
type ImagePicker interface {
	Pick(ctx context.Context) (string, error)
}

// Command shells out to a user-configured chooser program which prints the
// chosen reference on stdout. Exiting cleanly with no output counts as a
// cancel.
type Command struct {
	Name string
	Args []string
}

// FromEnv builds a Command from PADDOCK_IMAGE_PICKER. The second return is
// false when no chooser is configured.
func FromEnv() (*Command, bool) {
	raw := strings.TrimSpace(os.Getenv("PADDOCK_IMAGE_PICKER"))
	if raw == "" {
		return nil, false
	}
	fields := strings.Fields(raw)
	return &Command{Name: fields[0], Args: fields[1:]}, true
}

func (c *Command) Pick(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stderr = os.Stderr
	out, err := cmd.Output()
	ref := strings.TrimSpace(string(out))
	if err != nil {
		// Choosers signal dismissal with a non-zero exit and no selection.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ref == "" {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("picker: %s: %w", c.Name, err)
	}
	if ref == "" {
		return "", ErrCancelled
	}
	return ref, nil
}

// Path accepts an explicitly supplied reference. Local paths must exist;
// anything carrying a scheme is passed through untouched.
type Path struct {
	Ref string
}

func (p Path) Pick(context.Context) (string, error) {
	ref := strings.TrimSpace(p.Ref)
	if ref == "" {
		return "", ErrCancelled
	}
	if strings.Contains(ref, "://") {
		return ref, nil
	}
	if _, err := os.Stat(ref); err != nil {
		return "", fmt.Errorf("picker: %s: %w", ref, err)
	}
	return ref, nil
}
