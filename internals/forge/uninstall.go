package forge

import (
	"os"
	"path/filepath"

	"github.com/minefetch/minefetch/internals/instances"
)

// Uninstall removes the loader install from an instance and flips its
// loader kind back to vanilla
func Uninstall(instance *instances.Instance) error {
	if err := os.RemoveAll(instance.ForgeDir()); err != nil {
		return err
	}
	os.Remove(filepath.Join(instance.Dir(), forgeLock))

	instance.Config.Loader = instances.LoaderVanilla
	return instance.SaveConfig()
}
