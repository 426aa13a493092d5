package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-envdeps/pkg/envdeps"
)

// WriteJSON writes v as pretty-printed JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling JSON output: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// WriteManifest writes the resulting manifest as JSON.
func WriteManifest(w io.Writer, result *envdeps.Result) error {
	return WriteJSON(w, result.Manifest)
}

type resolutionJSON struct {
	Environment string `json:"environment"`
	Determined  bool   `json:"determined"`
	Strategy    string `json:"strategy,omitempty"`
	Source      string `json:"source,omitempty"`
	Skipped     string `json:"skipped,omitempty"`
}

func newResolutionJSON(result *envdeps.Result) resolutionJSON {
	out := resolutionJSON{
		Environment: result.Resolution.Environment,
		Determined:  result.Resolution.Determined,
		Strategy:    result.Resolution.Strategy,
		Source:      result.Resolution.Source,
	}
	if result.Skipped != nil {
		out.Skipped = result.Skipped.Error()
	}
	return out
}

// WriteResolution writes the environment resolution as a JSON object.
func WriteResolution(w io.Writer, result *envdeps.Result) error {
	return WriteJSON(w, newResolutionJSON(result))
}

// WriteEnvironment writes the resolved environment name on its own line.
// Nothing is written when the environment is undetermined.
func WriteEnvironment(w io.Writer, result *envdeps.Result) error {
	if !result.Resolution.Determined {
		return nil
	}
	_, err := fmt.Fprintln(w, result.Resolution.Environment)
	return err
}

type settingsJSON struct {
	GitEnv          any               `json:"git-env"`
	CheckGitEnv     bool              `json:"check-git-env"`
	CheckHostEnv    bool              `json:"check-host-env"`
	HostEnvVariable string            `json:"host-env-variable"`
	HostEnvMap      map[string]string `json:"host-env-map"`
	AskQuestion     bool              `json:"ask-question"`
	GitTimeout      string            `json:"git-timeout"`
	AskTimeout      string            `json:"ask-timeout"`
}

// WriteSettings writes the effective settings as JSON using the same keys
// as the configuration sources.
func WriteSettings(w io.Writer, s *envdeps.Settings) error {
	return WriteJSON(w, settingsJSON{
		GitEnv:          s.GitEnv,
		CheckGitEnv:     s.CheckGitEnv,
		CheckHostEnv:    s.CheckHostEnv,
		HostEnvVariable: s.HostEnvVariable,
		HostEnvMap:      s.HostEnvMap,
		AskQuestion:     s.AskQuestion,
		GitTimeout:      s.GitTimeout.String(),
		AskTimeout:      s.AskTimeout.String(),
	})
}

// WriteReport writes the resolution and resulting manifest as one JSON
// object.
func WriteReport(w io.Writer, result *envdeps.Result) error {
	out := struct {
		Resolution resolutionJSON   `json:"resolution"`
		Manifest   envdeps.Manifest `json:"manifest"`
	}{
		Resolution: newResolutionJSON(result),
		Manifest:   result.Manifest,
	}
	return WriteJSON(w, out)
}
