package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryEntry is a file or directory stored in a MemoryFileSystem.
type memoryEntry struct {
	absPath string
	content []byte
	info    *memoryFileInfo
}

// memoryFile is a view of an entry relative to the directory being walked.
type memoryFile struct {
	entry   *memoryEntry
	relPath string
}

func (f *memoryFile) Path() string         { return f.entry.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.entry.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	return f.entry.content, nil
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	var skipped []string
	for _, entry := range d.fs.entriesUnder(d.absPath) {
		if underAny(entry.absPath, skipped) {
			continue
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(entry.absPath, d.absPath), "/")
		if rel == "" {
			rel = "."
		}

		err := fn(&memoryFile{entry: entry, relPath: rel}, nil)
		if errors.Is(err, SkipDir) && entry.info.IsDir() {
			if entry.absPath == d.absPath {
				return nil
			}
			skipped = append(skipped, entry.absPath)
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func underAny(p string, dirs []string) bool {
	for _, d := range dirs {
		if strings.HasPrefix(p, d+"/") {
			return true
		}
	}
	return false
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Paths are virtual and always use forward slashes.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	root    string
}

// NewMemoryFileSystem creates a new in-memory filesystem rooted at root.
// Relative paths passed to other methods are resolved against root.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    root,
	}
	mfs.addDir(root)
	return mfs
}

// AddFile adds a file to the in-memory filesystem, creating parent directories.
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.putFile(mfs.resolve(filePath), []byte(content))
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	abs := mfs.resolve(dirPath)
	mfs.ensureParents(abs)
	mfs.addDir(abs)
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) putFile(abs string, content []byte) {
	mfs.ensureParents(abs)
	mfs.entries[abs] = &memoryEntry{
		absPath: abs,
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    0o644,
			modTime: time.Now(),
		},
	}
}

func (mfs *MemoryFileSystem) addDir(abs string) {
	if _, exists := mfs.entries[abs]; exists {
		return
	}
	mfs.entries[abs] = &memoryEntry{
		absPath: abs,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			mode:    0o755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

func (mfs *MemoryFileSystem) ensureParents(abs string) {
	for dir := path.Dir(abs); dir != "/" && dir != "."; dir = path.Dir(dir) {
		mfs.addDir(dir)
	}
}

// entriesUnder returns base and everything below it, sorted by path.
func (mfs *MemoryFileSystem) entriesUnder(base string) []*memoryEntry {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var out []*memoryEntry
	for p, e := range mfs.entries {
		if p == base || base == "/" || strings.HasPrefix(p, base+"/") {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].absPath < out[j].absPath })
	return out
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	abs := mfs.resolve(openPath)

	mfs.mu.RLock()
	entry, exists := mfs.entries[abs]
	mfs.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("directory not found: %s", openPath)
	}
	if !entry.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: abs, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, exists := mfs.entries[mfs.resolve(filePath)]
	if !exists {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}
	if entry.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return entry.content, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, exists := mfs.entries[mfs.resolve(statPath)]
	if !exists {
		return nil, fmt.Errorf("path not found: %s", statPath)
	}
	return entry.info, nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.resolve(dirPath)
	if entry, exists := mfs.entries[abs]; exists && !entry.info.IsDir() {
		return fmt.Errorf("path is a file, not a directory: %s", dirPath)
	}
	mfs.ensureParents(abs)
	mfs.addDir(abs)
	return nil
}

// WriteFile implements FileSystemProvider.WriteFile.
// Unlike AddFile, the parent directory must already exist.
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.resolve(filePath)
	parent, exists := mfs.entries[path.Dir(abs)]
	if !exists || !parent.info.IsDir() {
		return fmt.Errorf("parent directory not found: %s", path.Dir(abs))
	}
	if entry, exists := mfs.entries[abs]; exists && entry.info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	mfs.putFile(abs, buf)
	return nil
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
