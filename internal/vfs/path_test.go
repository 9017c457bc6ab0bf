package vfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPathCleans(t *testing.T) {
	assert.Equal(t, "/a/b", NewPath("/a//b/").String())
	assert.Equal(t, "/a/b", NewPath("a/./b").String())
	assert.Equal(t, "/b", NewPath("/a/../b").String())
	assert.Equal(t, "/", NewPath("").String())
}

func TestPathParent(t *testing.T) {
	assert.Equal(t, "/a", NewPath("/a/b.js").Parent().String())
	assert.Equal(t, "/", NewPath("/a").Parent().String())
	assert.Equal(t, "/", NewPath("/").Parent().String())
	assert.True(t, NewPath("/").Parent().IsRoot())
}

func TestPathJoin(t *testing.T) {
	assert.Equal(t, "/a/b/c.js", NewPath("/a/b").Join("c.js").String())
	assert.Equal(t, "/a/c.js", NewPath("/a/b").Join("../c.js").String())
	assert.Equal(t, "/a/b/c", NewPath("/a").Join("b/c").String())
}

func TestPathExt(t *testing.T) {
	assert.Equal(t, ".js", NewPath("/a/b.js").Ext())
	assert.Equal(t, ".ts", NewPath("/x.d.ts").Ext())
	assert.Equal(t, "", NewPath("/a/b").Ext())
}

func TestPathIsInside(t *testing.T) {
	out := NewPath("/out")

	assert.True(t, NewPath("/out/a.js").IsInside(out))
	assert.True(t, NewPath("/out/nested/deep/a.js").IsInside(out))
	assert.True(t, NewPath("/out").IsInside(out))
	assert.False(t, NewPath("/tmp/b.js").IsInside(out))
	// Sibling with a shared name prefix is not inside.
	assert.False(t, NewPath("/output/a.js").IsInside(out))
	// Everything is inside the root.
	assert.True(t, NewPath("/tmp/b.js").IsInside(NewPath("/")))
}

func TestFSReadWrite(t *testing.T) {
	ctx := context.Background()
	fs := NewMem()
	p := NewPath("/src/deep/app.js")

	ok, err := fs.Exists(ctx, p)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.WriteFile(ctx, p, []byte("content")))

	ok, err = fs.Exists(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := fs.ReadFile(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestFSExistsIsFalseForDirectories(t *testing.T) {
	ctx := context.Background()
	fs := NewMem()
	require.NoError(t, fs.WriteFile(ctx, NewPath("/src/a.js"), []byte("x")))

	ok, err := fs.Exists(ctx, NewPath("/src"))
	require.NoError(t, err)
	assert.False(t, ok)
}
