// Command healthcheck exits 0 when the server answers its version endpoint
// with build metadata. It is meant for container HEALTHCHECK lines.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/ericogr/creature-battles/internal/constants"
	"github.com/ericogr/creature-battles/internal/version"
)

const defaultURL = "http://127.0.0.1:8080" + constants.RouteAPIPrefix + constants.RouteVersion

func main() {
	url := os.Getenv(constants.EnvHealthURL)
	if url == "" {
		url = defaultURL
	}
	if !healthy(&http.Client{Timeout: 2 * time.Second}, url) {
		os.Exit(1)
	}
}

func healthy(client *http.Client, url string) bool {
	resp, err := client.Get(url)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}
	var info version.Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return false
	}
	return info.Version != ""
}
