package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// ReadDirectory builds the tree below root. Unreadable subdirectories are
// listed without children.
func (p *Provider) ReadDirectory(ctx context.Context, root string) ([]*Node, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	root = filepath.Clean(root)

	var mu sync.Mutex
	nodes := make(map[string]*Node)

	// Walk callbacks run concurrently.
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == root {
			return err
		}
		if err != nil {
			p.logger.Debug("Skipping unreadable entry", zap.String("path", path), zap.Error(err))
			return nil
		}

		name := d.Name()
		isDir := isDirectory(path, d)

		if p.ignored(name) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		mu.Lock()
		nodes[path] = &Node{Name: name, Path: path, IsDirectory: isDir}
		mu.Unlock()

		if d.IsDir() && level(root, path) >= p.cfg.MaxDepth {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", root, err)
	}

	return assemble(root, nodes), nil
}

// assemble links nodes to their parents and orders every level.
func assemble(root string, nodes map[string]*Node) []*Node {
	var top []*Node
	for path, node := range nodes {
		parent := filepath.Dir(path)
		if parent == root {
			top = append(top, node)
			continue
		}
		if dir, ok := nodes[parent]; ok {
			dir.Children = append(dir.Children, node)
		}
	}

	sortNodes(top)
	return top
}

func sortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.IsDirectory != b.IsDirectory {
			return a.IsDirectory
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

// ignored reports whether name matches an ignore glob.
func (p *Provider) ignored(name string) bool {
	for _, pattern := range p.cfg.Ignore {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// level is the depth of path below root, with root's entries at 0.
func level(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	return strings.Count(rel, string(os.PathSeparator))
}

// isDirectory follows symlinks when classifying, without descending into them.
func isDirectory(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.IsDir()
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
