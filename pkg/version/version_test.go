package version_test

import (
	"encoding/json"
	"runtime"
	"testing"

	// Packages
	version "github.com/mutablelogic/go-species/pkg/version"
	assert "github.com/stretchr/testify/assert"
)

func Test_Version_001(t *testing.T) {
	assert := assert.New(t)
	info := version.New("species")
	assert.Equal("species", info.Name)
	assert.Equal(runtime.Version(), info.Compiler)
	assert.NotEmpty(info.Version)
	assert.Equal(info.Version, version.Version())
}

func Test_Version_002(t *testing.T) {
	assert := assert.New(t)
	tag := version.GitTag
	t.Cleanup(func() { version.GitTag = tag })

	version.GitTag = "v1.2.3"
	data, err := version.JSON("species")
	if assert.NoError(err) {
		var info map[string]any
		assert.NoError(json.Unmarshal(data, &info))
		assert.Equal("v1.2.3", info["version"])
		assert.Equal("v1.2.3", info["tag"])
		assert.Equal("species", info["name"])
	}
}
