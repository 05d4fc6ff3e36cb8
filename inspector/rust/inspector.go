package rust

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/viant/afs"
	"golang.org/x/sync/errgroup"

	"github.com/viant/rustscan/inspector/crate"
	"github.com/viant/rustscan/inspector/metrics"
)

// Inspector provides functionality to inspect Rust code and measure its
// unsafe usage
type Inspector struct {
	config *crate.Config
	fs     afs.Service
}

// NewInspector creates a new Rust Inspector with the provided configuration
func NewInspector(config *crate.Config) *Inspector {
	if config == nil {
		config = crate.DefaultConfig()
	}
	return &Inspector{
		config: config,
		fs:     afs.New(),
	}
}

// InspectSource parses Rust source code from a byte slice and tallies unsafe
// usage
func (i *Inspector) InspectSource(src []byte) (*metrics.FileMetrics, error) {
	return i.inspectSource(context.Background(), src, "source.rs")
}

// InspectFile parses a Rust source file and tallies unsafe usage
func (i *Inspector) InspectFile(filename string) (*metrics.FileMetrics, error) {
	ctx := context.Background()
	src, err := i.fs.DownloadWithURL(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.inspectSource(ctx, src, filename)
}

func (i *Inspector) inspectSource(ctx context.Context, src []byte, filename string) (*metrics.FileMetrics, error) {
	tree, err := parseSource(ctx, src)
	if err != nil {
		return nil, err
	}
	walker := newWalker(src, i.config.IncludeTests)
	walker.walkFile(tree.RootNode())

	digest, err := metrics.Digest(src)
	if err != nil {
		return nil, fmt.Errorf("failed to digest %s: %w", filename, err)
	}
	return &metrics.FileMetrics{
		Path:          filename,
		Digest:        digest,
		Counters:      walker.counters,
		ForbidsUnsafe: walker.forbidsUnsafe,
	}, nil
}

// InspectCrate locates the crate containing location, scans its .rs sources
// and aggregates per-file metrics. Files are scanned concurrently; each scan
// owns its tree and counters, so no coordination beyond the errgroup is
// needed. File identity is content based: a file reached more than once
// contributes a single time to the totals.
func (i *Inspector) InspectCrate(location string) (*metrics.CrateMetrics, error) {
	detector := crate.New()
	aCrate, err := detector.Detect(location)
	if err != nil {
		return nil, err
	}
	paths, err := i.findRustFiles(aCrate.RootPath)
	if err != nil {
		return nil, err
	}

	files := make([]*metrics.FileMetrics, len(paths))
	group, ctx := errgroup.WithContext(context.Background())
	if i.config.Concurrency > 0 {
		group.SetLimit(i.config.Concurrency)
	}
	for idx, path := range paths {
		idx, path := idx, path
		group.Go(func() error {
			src, err := i.fs.DownloadWithURL(ctx, path)
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", path, err)
			}
			file, err := i.inspectSource(ctx, src, path)
			if err != nil {
				return fmt.Errorf("error processing %s: %w", path, err)
			}
			files[idx] = file
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &metrics.CrateMetrics{
		Name: aCrate.Name,
		Root: aCrate.RootPath,
	}
	seen := make(map[uint64]bool)
	for _, file := range files {
		if seen[file.Digest] {
			continue
		}
		seen[file.Digest] = true
		result.AddFile(file)
	}
	if aCrate.EntryPoint != "" {
		for _, file := range files {
			if file.Path == aCrate.EntryPoint {
				result.ForbidsUnsafe = file.ForbidsUnsafe
			}
		}
	}
	return result, nil
}

// Directories never holding crate sources
var skipDirs = map[string]struct{}{
	"target":       {},
	"node_modules": {},
}

// findRustFiles walks the crate directory tree for .rs files, honoring the
// root .gitignore when configured.
func (i *Inspector) findRustFiles(root string) ([]string, error) {
	var gi *ignore.GitIgnore
	if i.config.SkipGitignored {
		gi, _ = ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	}

	var results []string
	err := filepath.WalkDir(root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(name) != ".rs" {
			return nil
		}
		if gi != nil {
			if rel, relErr := filepath.Rel(root, path); relErr == nil && gi.MatchesPath(rel) {
				return nil
			}
		}
		results = append(results, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking crate directory: %w", err)
	}
	sort.Strings(results)
	return results, nil
}
