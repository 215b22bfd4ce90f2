package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/pathweaver/internal/config"
	"github.com/specialistvlad/pathweaver/internal/ctxlog"
	"github.com/specialistvlad/pathweaver/internal/fsutil"
	"github.com/specialistvlad/pathweaver/internal/manifest"
	"github.com/specialistvlad/pathweaver/internal/resolver"
	"github.com/specialistvlad/pathweaver/internal/tmpl"
	"github.com/specialistvlad/pathweaver/internal/validate"
)

// registerTasks wires every CLI-reachable task into the app's registry.
func (a *App) registerTasks() {
	a.registry.Register("validate", a.taskValidate)
	a.registry.Register("path", a.taskPath)
	a.registry.Register("context", a.taskContext)
	a.registry.Register("debug", a.taskDebug)
	a.registry.Register("ensure-dirs", a.taskEnsureDirs)
	a.registry.Register("scan", a.taskScan)
}

// taskValidate checks the configuration documents and prints a summary.
// Any problem makes the task fail so scripted callers get a non-zero exit.
func (a *App) taskValidate(ctx context.Context, args []string) error {
	ok, problems := validate.Configs(ctx, a.configs, a.cfg.ConfigDir, validate.Options{})
	if ok {
		fmt.Fprintf(a.outW, "Validation passed (%s).\n", a.cfg.ConfigDir)
		return nil
	}

	fmt.Fprintf(a.outW, "Validation failed (%s):\n", a.cfg.ConfigDir)
	for _, p := range problems {
		fmt.Fprintf(a.outW, "  - %s\n", p)
	}
	return fmt.Errorf("validation found %d problem(s)", len(problems))
}

// taskPath resolves a single file template key into a concrete path.
// Usage: path KEY [field=value ...]
func (a *App) taskPath(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("path requires a template key, e.g. path cube galaxy=ngc3")
	}
	extra, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	resolved, err := resolver.GetPath(ctx, a.configs, a.cfg.ConfigDir, args[0], nil, extra, tmpl.Options{Strict: a.cfg.Strict})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, resolved)
	return nil
}

// taskContext dumps the resolution context as sorted key=value lines.
// Usage: context [field=value ...]
func (a *App) taskContext(ctx context.Context, args []string) error {
	extra, err := parseAssignments(args)
	if err != nil {
		return err
	}

	docs, err := a.configs.Load(ctx, a.cfg.ConfigDir)
	if err != nil {
		return err
	}

	tc := resolver.BuildContext(ctx, docs, nil, extra)
	for _, key := range resolver.ContextKeys(tc) {
		fmt.Fprintf(a.outW, "%s = %s\n", key, tmpl.ValueString(tc[key]))
	}
	return nil
}

// taskDebug resolves one template key with verbose per-placeholder logging.
// Usage: debug KEY [field=value ...]
func (a *App) taskDebug(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("debug requires a template key, e.g. debug outputs.mom0")
	}
	extra, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	docs, err := a.configs.Load(ctx, a.cfg.ConfigDir)
	if err != nil {
		return err
	}

	resolved, err := resolver.DebugTemplate(ctx, docs, args[0], nil, extra)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.outW, resolved)
	return nil
}

// taskEnsureDirs creates every directory the paths document names.
func (a *App) taskEnsureDirs(ctx context.Context, args []string) error {
	docs, err := a.configs.Load(ctx, a.cfg.ConfigDir)
	if err != nil {
		return err
	}

	created, err := config.EnsureDirectories(ctx, docs.Paths)
	if err != nil {
		return err
	}

	if len(created) == 0 {
		fmt.Fprintln(a.outW, "All directories already exist.")
		return nil
	}
	for _, dir := range created {
		fmt.Fprintf(a.outW, "created %s\n", dir)
	}
	return nil
}

// taskScan builds a manifest CSV from files under the project root.
// Usage: scan OUT_FILE [PATTERN ...]
func (a *App) taskScan(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("scan requires an output file, e.g. scan manifest.csv '*.fits'")
	}
	outFile := args[0]
	patterns := args[1:]

	root, err := fsutil.ProjectRoot(".")
	if err != nil {
		return err
	}

	files, err := manifest.Scan(root, patterns, true)
	if err != nil {
		return err
	}

	rows := manifest.BuildRows(files, nil)
	if err := manifest.Write(rows, outFile); err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("Manifest written.", "rows", len(rows), "file", outFile)
	fmt.Fprintf(a.outW, "wrote %d row(s) to %s\n", len(rows), outFile)
	return nil
}

// parseAssignments turns "key=value" arguments into an extras map.
func parseAssignments(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	extra := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed argument %q: expected key=value", arg)
		}
		extra[key] = value
	}
	return extra, nil
}
