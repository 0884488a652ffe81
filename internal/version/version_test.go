// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	tests := []struct {
		name                      string
		version, commit, date     string
		wantVer, wantCom, wantDat string
	}{
		{"defaults", "dev", "none", "unknown", "v0.3.0", "0123456", "2026-01-02T03:04:05Z"},
		{"ldflags win", "1.0.0", "abcdef0", "2026-02-01", "1.0.0", "abcdef0", "2026-02-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, c, d := fromBuildInfo(info, tt.version, tt.commit, tt.date)
			assert.Equal(t, tt.wantVer, v)
			assert.Equal(t, tt.wantCom, c)
			assert.Equal(t, tt.wantDat, d)
		})
	}
}

func TestFromBuildInfo_Devel(t *testing.T) {
	v, _, _ := fromBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "dev", "none", "unknown")
	assert.Equal(t, "dev", v)
}

func TestInfo(t *testing.T) {
	assert.Contains(t, Info(), "adlc version ")
}
