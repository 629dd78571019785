package forge

import "testing"

func TestLibraryLocationFromCoordinate(t *testing.T) {
	lib := &forgeLib{Name: "org.ow2.asm:asm:9.2"}
	dir, file, err := libraryLocation(lib)
	if err != nil {
		t.Fatal(err)
	}
	if dir != "org/ow2/asm/asm/9.2" || file != "asm-9.2.jar" {
		t.Errorf("got %q / %q", dir, file)
	}
}

func TestLibraryLocationFromDownloads(t *testing.T) {
	lib := &forgeLib{Name: "org.ow2.asm:asm:9.2"}
	lib.Downloads = &struct {
		Artifact struct {
			Path string `json:"path"`
			URL  string `json:"url"`
		} `json:"artifact"`
	}{}
	lib.Downloads.Artifact.Path = "org/ow2/asm/asm/9.2/asm-9.2.jar"

	dir, file, err := libraryLocation(lib)
	if err != nil {
		t.Fatal(err)
	}
	if dir != "org/ow2/asm/asm/9.2" || file != "asm-9.2.jar" {
		t.Errorf("got %q / %q", dir, file)
	}
}

func TestLibraryLocationMalformed(t *testing.T) {
	if _, _, err := libraryLocation(&forgeLib{Name: "justonepart"}); err == nil {
		t.Error("expected error")
	}
}

func TestLibraryURLDefaults(t *testing.T) {
	lib := &forgeLib{Name: "org.ow2.asm:asm:9.2"}
	url := libraryURL(lib, "org/ow2/asm/asm/9.2/asm-9.2.jar")
	if url != "https://libraries.minecraft.net/org/ow2/asm/asm/9.2/asm-9.2.jar" {
		t.Errorf("url = %q", url)
	}

	lib.URL = "https://maven.minecraftforge.net/"
	url = libraryURL(lib, "org/ow2/asm/asm/9.2/asm-9.2.jar")
	if url != "https://maven.minecraftforge.net/org/ow2/asm/asm/9.2/asm-9.2.jar" {
		t.Errorf("url = %q", url)
	}
}
