package minecraft

// ResourcesBaseURL is the content-addressed asset object store
const ResourcesBaseURL = "https://resources.download.minecraft.net"

// AssetIndex is just a map containing AssetObjects
type AssetIndex struct {
	Objects map[string]AssetObject `json:"objects"`
}

// AssetObject is one minecraft asset
type AssetObject struct {
	Hash string `json:"hash"`
	Size int    `json:"size"`
	// URL overrides the default object-store location (used by some
	// third party version archives)
	URL string `json:"url,omitempty"`
}

// UnixPath returns the content-addressed path including the folder.
// example: fe/fe32f3b8…
func (a *AssetObject) UnixPath() string {
	return a.Hash[:2] + "/" + a.Hash
}

// DownloadURL returns the download url for this asset
func (a *AssetObject) DownloadURL() string {
	if a.URL != "" {
		return a.URL
	}
	return ResourcesBaseURL + "/" + a.UnixPath()
}
