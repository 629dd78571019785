package forge

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/minefetch/minefetch/internals/downloadmgr"
	"github.com/minefetch/minefetch/internals/java"
)

// unpackAugmentedLibrary fetches the ".pack.xz" companion of a
// missing jar and turns it back into the jar. These archives carry a
// signature blob after the pack200 stream whose length sits in the
// last 8 bytes, it has to be cropped off before unpack200 accepts the
// file.
func (fi *Installer) unpackAugmentedLibrary(ctx context.Context, jarURL string, dest string) error {
	body, err := downloadmgr.Get(ctx, fi.client, jarURL+".pack.xz")
	if err != nil {
		return err
	}
	defer body.Close()

	reader, err := xz.NewReader(body)
	if err != nil {
		return err
	}
	packed, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	cropped, err := cropPackSignature(packed)
	if err != nil {
		return err
	}

	cropFile, err := os.CreateTemp("", "*.pack.crop")
	if err != nil {
		return err
	}
	defer os.Remove(cropFile.Name())
	if _, err := cropFile.Write(cropped); err != nil {
		cropFile.Close()
		return err
	}
	if err := cropFile.Close(); err != nil {
		return err
	}

	// unpack200 shipped with java 8 and was removed in 14
	factory := java.NewFactory(fi.instance.JavaDir(), fi.client)
	runtime, err := factory.Version(ctx, 8)
	if err != nil {
		return err
	}
	unpack200, err := runtime.Bin("unpack200")
	if err != nil {
		return err
	}
	return fi.runCommand(ctx, unpack200, cropFile.Name(), dest)
}

// cropPackSignature removes the trailing signature of a ".pack" blob.
// The final 8 bytes are a footer whose first 4 bytes hold the
// signature length, little endian. The signature itself sits directly
// before the footer.
func cropPackSignature(packed []byte) ([]byte, error) {
	if len(packed) < 8 {
		return nil, fmt.Errorf("pack file too short: %d bytes", len(packed))
	}
	sigLen := int(binary.LittleEndian.Uint32(packed[len(packed)-8 : len(packed)-4]))
	cropLen := len(packed) - sigLen - 8
	if cropLen < 0 {
		return nil, fmt.Errorf("pack signature length %d exceeds file size %d", sigLen, len(packed))
	}
	return packed[:cropLen], nil
}
