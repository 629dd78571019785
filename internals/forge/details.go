package forge

import (
	"archive/zip"
	"encoding/json"
	"io"

	"github.com/minefetch/minefetch/internals/merrors"
)

// forgeDetails is the version descriptor the installer jar carries.
// Newer installers ship it as version.json, old ones wrap it in
// install_profile.json under versionInfo.
type forgeDetails struct {
	ID                 string     `json:"id"`
	MainClass          string     `json:"mainClass"`
	MinecraftArguments string     `json:"minecraftArguments,omitempty"`
	Libraries          []forgeLib `json:"libraries"`
}

type forgeLib struct {
	// Name is the maven coordinate "group:artifact:version"
	Name string `json:"name"`
	// URL overrides the default maven base url (old installers)
	URL       string `json:"url,omitempty"`
	Downloads *struct {
		Artifact struct {
			Path string `json:"path"`
			URL  string `json:"url"`
		} `json:"artifact"`
	} `json:"downloads,omitempty"`
	// Clientreq false marks server-only libraries
	Clientreq *bool `json:"clientreq,omitempty"`
}

type installProfile struct {
	VersionInfo *forgeDetails `json:"versionInfo"`
}

// parseInstallerDetails pulls the version descriptor out of the
// installer jar. The raw bytes of the descriptor are returned too, so
// they can be stored verbatim for the launch path.
func parseInstallerDetails(installerPath string) (*forgeDetails, []byte, error) {
	reader, err := zip.OpenReader(installerPath)
	if err != nil {
		return nil, nil, &merrors.ExtractionError{Archive: installerPath, Err: err}
	}
	defer reader.Close()

	if raw, err := readZipEntry(reader, "version.json"); err == nil {
		details := &forgeDetails{}
		if err := json.Unmarshal(raw, details); err != nil {
			return nil, nil, &merrors.SchemaError{Source: installerPath + "!version.json", Err: err}
		}
		return details, raw, nil
	}

	raw, err := readZipEntry(reader, "install_profile.json")
	if err != nil {
		return nil, nil, &merrors.SchemaError{Source: installerPath, Err: err}
	}
	profile := &installProfile{}
	if err := json.Unmarshal(raw, profile); err != nil || profile.VersionInfo == nil {
		return nil, nil, &merrors.SchemaError{Source: installerPath + "!install_profile.json", Err: err}
	}
	// re-encode just the inner descriptor so the stored details.json
	// always has the same shape
	inner, err := json.Marshal(profile.VersionInfo)
	if err != nil {
		return nil, nil, err
	}
	return profile.VersionInfo, inner, nil
}

func readZipEntry(reader *zip.ReadCloser, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer src.Close()
		return io.ReadAll(src)
	}
	return nil, io.EOF
}
