package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/packcore/internal/vfs"
)

func TestEnvironmentDerivation(t *testing.T) {
	base := NewEnvironment(EcmascriptModules)
	ts := base.WithTypescript()

	assert.False(t, base.TypescriptEnabled(), "derivation must not mutate the original")
	assert.True(t, ts.TypescriptEnabled())
	assert.Equal(t, EcmascriptModules, ts.ModuleSystem())
	assert.NotEqual(t, base.Key(), ts.Key())
	assert.Equal(t, base, NewEnvironment(EcmascriptModules), "environments are plain values")
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		raw  string
		kind RequestKind
	}{
		{"./util", RelativeRequest},
		{"../lib/a", RelativeRequest},
		{".", RelativeRequest},
		{"/src/a.js", AbsoluteRequest},
		{"react", ModuleRequest},
		{"@scope/pkg/entry", ModuleRequest},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := ParseRequest(tt.raw)
			assert.Equal(t, tt.kind, r.Kind())
			assert.Equal(t, tt.raw, r.Raw())
		})
	}
}

func TestSourceAsset(t *testing.T) {
	ctx := context.Background()
	fs := vfs.NewMem()
	p := vfs.NewPath("/src/a.js")
	require.NoError(t, fs.WriteFile(ctx, p, []byte("let a = 1")))

	src := NewSource(fs, p)
	assert.Equal(t, p, src.Path())

	content, err := src.Content(ctx)
	require.NoError(t, err)
	assert.Equal(t, "let a = 1", string(content))

	refs, err := src.References(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestAssetKeyDistinguishesTypes(t *testing.T) {
	fs := vfs.NewMem()
	p := vfs.NewPath("/src/a.js")
	src := NewSource(fs, p)

	assert.Contains(t, AssetKey(src), "/src/a.js")
	assert.NotEqual(t, AssetKey(src), AssetKey(NewSource(fs, vfs.NewPath("/src/b.js"))))
}

func TestResolveResultMap(t *testing.T) {
	ctx := context.Background()
	fs := vfs.NewMem()
	a := NewSource(fs, vfs.NewPath("/a.js"))
	b := NewSource(fs, vfs.NewPath("/b.js"))

	result := &ResolveResult{Assets: []Asset{a, b}}
	mapped, err := result.Map(ctx, func(ctx context.Context, in Asset) (Asset, error) {
		return NewSource(fs, in.Path().Parent().Join("out"+in.Path().Base())), nil
	})
	require.NoError(t, err)
	require.Len(t, mapped.Assets, 2)
	assert.Equal(t, "/outa.js", mapped.Assets[0].Path().String())
	assert.Equal(t, "/outb.js", mapped.Assets[1].Path().String())
	// The original result is untouched.
	assert.Equal(t, "/a.js", result.Assets[0].Path().String())
}

func TestTransitionsByNameKey(t *testing.T) {
	table := TransitionsByName{
		"server": IdentityTransition{},
		"client": IdentityTransition{},
	}
	assert.Equal(t, "transitions(client,server)", table.Key())
	assert.Equal(t, "transitions()", TransitionsByName{}.Key())
}
