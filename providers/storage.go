package providers

import (
	"syscall"
	"time"

	"github.com/ftahirops/kestrel/model"
)

// StorageProvider samples the root filesystem's block usage via statfs(2)
// and reports storage as the used fraction of total capacity (§6). It is
// grounded in the teacher's collector/filesystem.go, narrowed from an
// all-mounts sweep to the single root volume the spec's storage signal
// names.
type StorageProvider struct {
	// Path is the mount point sampled; defaults to "/" when empty.
	Path string

	statfs func(path string, buf *syscall.Statfs_t) error
}

// NewStorageProvider returns a provider sampling the root volume.
func NewStorageProvider() *StorageProvider {
	return &StorageProvider{Path: "/", statfs: syscall.Statfs}
}

func (p *StorageProvider) ID() string { return "storage" }

func (p *StorageProvider) Read() model.Sample {
	now := time.Now()
	path := p.Path
	if path == "" {
		path = "/"
	}
	statfs := p.statfs
	if statfs == nil {
		statfs = syscall.Statfs
	}

	var stat syscall.Statfs_t
	if err := statfs(path, &stat); err != nil {
		return model.InvalidSample("storage", now)
	}

	bsize := uint64(stat.Bsize)
	total := stat.Blocks * bsize
	if total == 0 {
		return model.InvalidSample("storage", now)
	}
	free := stat.Bfree * bsize
	used := clamp01(1 - float64(free)/float64(total))
	return model.Sample{SignalID: "storage", Value: used, Timestamp: now, Valid: true}
}
