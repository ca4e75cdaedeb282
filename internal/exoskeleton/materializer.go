// Package exoskeleton implements the Exoskeleton Materializer: rendering a
// fixed, versioned template's file set under project_root/.uvmgr/ (and
// sibling locations the template declares) with create/force/preview
// semantics.
package exoskeleton

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/criteria"
	dodErrors "github.com/seanchatmangpt/uvmgr-sub002/internal/errors"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/lock"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/semconv"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/telemetry"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/util"
)

// Mode selects the materialization behavior.
type Mode string

const (
	ModeCreate  Mode = "create"
	ModeForce   Mode = "force"
	ModePreview Mode = "preview"
)

// Result is the reported outcome of one materialization, per §4.3.
type Result struct {
	FilesCreated         []string
	FilesOverwritten     []string
	FilesSkipped         []string
	WorkflowsCreated     []string
	AIIntegrationsEnabled bool
}

// WriteResult is the create/force/preview outcome of writing an arbitrary
// FileDescriptor set, with no exoskeleton-template-specific fields. Shared by
// the Materializer (which wraps it with WorkflowsCreated/AIIntegrationsEnabled)
// and any other caller that needs the same overwrite semantics - the pipeline
// generator, notably, so generated CI manifests respect create vs force
// instead of force-overwriting unconditionally.
type WriteResult struct {
	FilesCreated     []string
	FilesOverwritten []string
	FilesSkipped     []string
}

// WriteFileSet writes files under root according to mode, acquiring the
// project's advisory lock for create/force. create is atomic across the
// whole set: if any target exists with differing content, nothing is
// written and the returned error enumerates every conflict. preview never
// touches the filesystem or the lock.
func WriteFileSet(ctx context.Context, root string, files []FileDescriptor, mode Mode) (WriteResult, error) {
	sorted := make([]FileDescriptor, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].RelPath < sorted[j].RelPath })

	if mode == ModePreview {
		return previewWriteResult(root, sorted), nil
	}

	uvmgrDir := filepath.Join(root, ".uvmgr")
	l := lock.New(uvmgrDir)
	if err := l.Check(); err != nil {
		return WriteResult{}, err
	}
	if err := l.Acquire(); err != nil {
		return WriteResult{}, err
	}
	defer l.Release()

	if mode == ModeCreate {
		return writeFileSetCreate(root, sorted)
	}
	return writeFileSetForce(root, sorted)
}

func previewWriteResult(root string, files []FileDescriptor) WriteResult {
	var res WriteResult
	for _, f := range files {
		abs := filepath.Join(root, f.RelPath)
		existing, err := os.ReadFile(abs)
		switch {
		case err != nil:
			res.FilesCreated = append(res.FilesCreated, f.RelPath)
		case bytes.Equal(existing, f.Content):
			res.FilesSkipped = append(res.FilesSkipped, f.RelPath)
		default:
			res.FilesOverwritten = append(res.FilesOverwritten, f.RelPath)
		}
	}
	return res
}

func writeFileSetCreate(root string, files []FileDescriptor) (WriteResult, error) {
	var conflicts []string
	var toCreate []FileDescriptor
	var skipped []string

	for _, f := range files {
		abs := filepath.Join(root, f.RelPath)
		existing, err := os.ReadFile(abs)
		switch {
		case err != nil:
			toCreate = append(toCreate, f)
		case bytes.Equal(existing, f.Content):
			skipped = append(skipped, f.RelPath)
		default:
			conflicts = append(conflicts, f.RelPath)
		}
	}

	if len(conflicts) > 0 {
		return WriteResult{}, dodErrors.ErrMaterializeConflict(conflicts)
	}

	for _, f := range toCreate {
		abs := filepath.Join(root, f.RelPath)
		if err := util.AtomicWriteFile(abs, f.Content, 0644); err != nil {
			return WriteResult{}, dodErrors.Wrap(err, "write file")
		}
	}

	return WriteResult{FilesCreated: relPaths(toCreate), FilesSkipped: skipped}, nil
}

func writeFileSetForce(root string, files []FileDescriptor) (WriteResult, error) {
	var created, overwritten, skipped []string

	for _, f := range files {
		abs := filepath.Join(root, f.RelPath)
		existing, err := os.ReadFile(abs)
		switch {
		case err != nil:
			created = append(created, f.RelPath)
		case bytes.Equal(existing, f.Content):
			skipped = append(skipped, f.RelPath)
			continue
		default:
			overwritten = append(overwritten, f.RelPath)
		}

		if err := util.AtomicWriteFile(abs, f.Content, 0644); err != nil {
			return WriteResult{}, dodErrors.Wrap(err, "write file")
		}
	}

	return WriteResult{FilesCreated: created, FilesOverwritten: overwritten, FilesSkipped: skipped}, nil
}

// Materializer renders ExoskeletonTemplate file sets onto disk.
type Materializer struct {
	Registry  *criteria.Registry
	Telemetry telemetry.Port
}

// New constructs a Materializer. A nil Telemetry falls back to telemetry.NoOp().
func New(reg *criteria.Registry, tel telemetry.Port) *Materializer {
	if tel == nil {
		tel = telemetry.NoOp()
	}
	return &Materializer{Registry: reg, Telemetry: tel}
}

// Materialize renders id's file set under root according to mode. create
// and force modes acquire the project's advisory lock for the duration of the
// operation; preview never touches the filesystem.
func (m *Materializer) Materialize(ctx context.Context, root string, id TemplateID, mode Mode) (Result, error) {
	if !KnownTemplates[id] {
		return Result{}, dodErrors.ErrUnknownTemplate(string(id))
	}

	_, span := m.Telemetry.StartSpan(ctx, semconv.SpanExoskeletonInit,
		telemetry.String("exoskeleton.template_id", string(id)),
		telemetry.String("exoskeleton.mode", string(mode)),
	)
	defer span.End()

	files, err := Files(id, m.Registry)
	if err != nil {
		span.RecordException(err, false)
		return Result{}, err
	}

	wr, err := WriteFileSet(ctx, root, files, mode)
	if err != nil {
		span.RecordException(err, false)
		return Result{}, err
	}

	return Result{
		FilesCreated:          wr.FilesCreated,
		FilesOverwritten:      wr.FilesOverwritten,
		FilesSkipped:          wr.FilesSkipped,
		WorkflowsCreated:      WorkflowsCreated(id),
		AIIntegrationsEnabled: AIIntegrationsEnabled(id),
	}, nil
}

func relPaths(files []FileDescriptor) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}
