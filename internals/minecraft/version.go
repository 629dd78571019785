package minecraft

import "encoding/json"

// VersionDescriptor is the full per-version document ("details.json").
// It is downloaded once per install and then persisted verbatim to
// disk as the install's source of truth.
type VersionDescriptor struct {
	ID          string `json:"id"`
	Type        string `json:"type,omitempty"`
	ReleaseTime string `json:"releaseTime,omitempty"`
	Time        string `json:"time,omitempty"`
	MainClass   string `json:"mainClass,omitempty"`

	Downloads struct {
		Client JarDownload `json:"client"`
		Server JarDownload `json:"server,omitempty"`
	} `json:"downloads"`

	AssetIndex struct {
		ID        string `json:"id"`
		Sha1      string `json:"sha1,omitempty"`
		Size      int    `json:"size,omitempty"`
		TotalSize int    `json:"totalSize,omitempty"`
		URL       string `json:"url"`
	} `json:"assetIndex"`

	JavaVersion *JavaVersion `json:"javaVersion,omitempty"`

	Libraries Libraries `json:"libraries"`

	// MinecraftArguments is the legacy argument template (pre 1.13)
	MinecraftArguments string `json:"minecraftArguments,omitempty"`
	// Arguments is the modern argument system
	Arguments *Arguments `json:"arguments,omitempty"`

	Logging *Logging `json:"logging,omitempty"`
}

// JarDownload points at a game jar
type JarDownload struct {
	Sha1 string `json:"sha1"`
	Size int    `json:"size"`
	URL  string `json:"url"`
}

// JavaVersion states the runtime the game needs
type JavaVersion struct {
	Component    string `json:"component,omitempty"`
	MajorVersion int    `json:"majorVersion"`
}

// Arguments is the post-1.13 argument template
type Arguments struct {
	Game []Argument `json:"game"`
	JVM  []Argument `json:"jvm,omitempty"`
}

// Argument is one argument template entry; plain strings and
// rule-gated objects both occur
type Argument struct {
	Value StringSlice `json:"value"`
	Rules []Rule      `json:"rules,omitempty"`
}

// UnmarshalJSON accepts both the bare-string and the object form
func (a *Argument) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return a.Value.UnmarshalJSON(data)
	}
	type argument Argument
	var parsed argument
	if err := json.Unmarshal(data, &parsed); err != nil {
		return err
	}
	*a = Argument(parsed)
	return nil
}

// Logging describes the log4j configuration download
type Logging struct {
	Client struct {
		Argument string `json:"argument,omitempty"`
		Type     string `json:"type,omitempty"`
		File     struct {
			ID   string `json:"id"`
			Sha1 string `json:"sha1,omitempty"`
			Size int    `json:"size,omitempty"`
			URL  string `json:"url"`
		} `json:"file"`
	} `json:"client"`
}
