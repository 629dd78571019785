package instances

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/minefetch/minefetch/internals/downloadmgr"
	"github.com/minefetch/minefetch/internals/merrors"
	"github.com/minefetch/minefetch/internals/minecraft"
	"github.com/minefetch/minefetch/internals/progress"
)

// assetLock marks an unfinished asset download. Assets are content
// addressed and skipped when present, so a stale lock only means the
// store may be incomplete, never corrupt. It is reported, not fatal.
const assetLock = "download.lock"

// EnsureAssets downloads the asset index and every missing object of
// the given version. Present objects are skipped but still counted
// towards progress. Reports go to ch (may be nil).
func (i *Instance) EnsureAssets(ctx context.Context, details *minecraft.VersionDescriptor, ch chan<- progress.Report) error {
	legacy := details.AssetIndex.ID == "legacy"

	dir := filepath.Join(i.AssetsDir(), "dir")
	if legacy {
		dir = filepath.Join(i.AssetsDir(), "legacy_assets")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	lock := filepath.Join(i.AssetsDir(), "dir", assetLock)
	if _, err := os.Stat(lock); err == nil {
		log.Printf("found stale %s, a previous asset download did not finish. Missing objects are fetched now", assetLock)
	} else {
		if err := os.MkdirAll(filepath.Dir(lock), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(lock, []byte("assets are being downloaded. Please do not delete this file\n"), 0644); err != nil {
			return err
		}
	}

	index, err := i.fetchAssetIndex(ctx, details)
	if err != nil {
		return err
	}

	total := len(index.Objects)
	done := 0
	progress.Send(ch, progress.Report{Done: 0, Total: total, Message: "assets"})

	mgr := downloadmgr.New()
	mgr.Client = i.client
	for path, object := range index.Objects {
		target := filepath.Join(dir, "objects", filepath.FromSlash(object.UnixPath()))
		if legacy {
			target = filepath.Join(dir, filepath.FromSlash(path))
		}
		if _, err := os.Stat(target); err == nil {
			done++
			progress.Send(ch, progress.Report{Done: done, Total: total, Message: path})
			continue
		}
		item := downloadmgr.NewHTTPItem(object.DownloadURL(), target)
		item.Client = i.client
		item.Sha1 = object.Hash
		mgr.Add(item)
	}

	skipped := done
	mgr.OnProgress = func(managed int, _ int) {
		progress.Send(ch, progress.Report{Done: skipped + managed, Total: total})
	}
	if err := mgr.Start(ctx); err != nil {
		return err
	}

	progress.Send(ch, progress.Finished(total))
	return os.Remove(lock)
}

// fetchAssetIndex downloads (or reuses) the asset index json and
// returns the parsed object list
func (i *Instance) fetchAssetIndex(ctx context.Context, details *minecraft.VersionDescriptor) (*minecraft.AssetIndex, error) {
	indexPath := filepath.Join(i.AssetsDir(), "dir", "indexes", details.AssetIndex.ID+".json")

	raw, err := os.ReadFile(indexPath)
	if err != nil {
		raw, err = downloadmgr.GetBytes(ctx, i.client, details.AssetIndex.URL)
		if err != nil {
			return nil, err
		}
		if err := writeFileAtomic(indexPath, raw, 0644); err != nil {
			return nil, err
		}
	}

	index := &minecraft.AssetIndex{}
	if err := json.Unmarshal(raw, index); err != nil {
		return nil, &merrors.SchemaError{Source: details.AssetIndex.URL, Err: err}
	}
	return index, nil
}
