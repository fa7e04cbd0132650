// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

// VersionInfo describes the running binary
type VersionInfo struct {
	Version   string `json:"version"`
	Revision  string `json:"revision,omitempty"`
	Time      string `json:"time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// readVersionInfo collects module and vcs details from the embedded build info
func readVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   "dev",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}

	settings := map[string]string{}
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}
	info.Revision = settings["vcs.revision"]
	info.Time = settings["vcs.time"]
	info.Modified = settings["vcs.modified"] == "true"
	return info
}

// Short is the version with an abbreviated revision, e.g. "v0.3.0 (1a2b3c4d*)"
func (v VersionInfo) Short() string {
	if v.Revision == "" {
		return v.Version
	}
	rev := v.Revision
	if len(rev) > 8 {
		rev = rev[:8]
	}
	if v.Modified {
		rev += "*"
	}
	return fmt.Sprintf("%s (%s)", v.Version, rev)
}

// Format renders every known field, skipping empty ones
func (v VersionInfo) Format() string {
	var b strings.Builder
	b.WriteString("🩹 srcpatch " + v.Short() + "\n")
	if v.Time != "" {
		fmt.Fprintf(&b, "  built     %s\n", v.Time)
	}
	fmt.Fprintf(&b, "  go        %s\n", v.GoVersion)
	fmt.Fprintf(&b, "  platform  %s\n", v.Platform)
	return b.String()
}

func writeVersion(w io.Writer, info VersionInfo, asJSON bool) error {
	if !asJSON {
		_, err := io.WriteString(w, info.Format())
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(info); err != nil {
		return errors.Errorf("encoding version: %w", err)
	}
	return nil
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeVersion(cmd.OutOrStdout(), readVersionInfo(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
