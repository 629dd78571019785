package forge

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/minefetch/minefetch/internals/downloadmgr"
	"github.com/minefetch/minefetch/internals/merrors"
)

// promotionsURL is the upstream index of promoted forge builds,
// keyed "<game version>-latest" / "<game version>-recommended"
const promotionsURL = "https://files.minecraftforge.net/net/minecraftforge/forge/promotions_slim.json"

type promotions struct {
	Homepage string            `json:"homepage,omitempty"`
	Promos   map[string]string `json:"promos"`
}

// ErrNoForgeVersion is returned when upstream promotes no build for
// the requested game version
type ErrNoForgeVersion struct {
	GameVersion string
}

func (e *ErrNoForgeVersion) Error() string {
	return "no forge version exists for minecraft " + e.GameVersion
}

// latestForgeVersion looks up the promoted build for a game version
func latestForgeVersion(ctx context.Context, client *http.Client, gameVersion string) (string, error) {
	raw, err := downloadmgr.GetBytes(ctx, client, promotionsURL)
	if err != nil {
		return "", err
	}
	index := promotions{}
	if err := json.Unmarshal(raw, &index); err != nil {
		return "", &merrors.SchemaError{Source: promotionsURL, Err: err}
	}

	if version, ok := index.Promos[gameVersion+"-latest"]; ok {
		return version, nil
	}
	if version, ok := index.Promos[gameVersion+"-recommended"]; ok {
		return version, nil
	}
	return "", &ErrNoForgeVersion{GameVersion: gameVersion}
}

// majorOf parses the leading number of a forge build ("14.23.5.2859"
// gives 14). Unparseable input counts as 0, the oldest tier.
func majorOf(version string) int {
	head := version
	if i := strings.IndexByte(version, '.'); i >= 0 {
		head = version[:i]
	}
	major, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return major
}
