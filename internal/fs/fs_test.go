package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root string, rel ...string) {
	t.Helper()
	for _, r := range rel {
		p := filepath.Join(root, filepath.FromSlash(r))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}
}

func TestPathResolver(t *testing.T) {
	root := t.TempDir()
	r, err := NewPathResolver(root)
	require.NoError(t, err)

	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, abs, r.Root())
	assert.Equal(t, filepath.Join(abs, "README.md"), r.Resolve("README.md"))
	assert.Equal(t, "/etc/hosts", r.Resolve("/etc/hosts"))
	assert.Equal(t, filepath.Join("ml_toast", "__init__.py"), r.Rel(filepath.Join(abs, "ml_toast", "__init__.py")))
	assert.Equal(t, "/elsewhere/x", r.Rel("/elsewhere/x"))
}

func TestNewPathResolver_Invalid(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "file.txt")

	_, err := NewPathResolver(filepath.Join(root, "missing"))
	assert.Error(t, err)

	_, err = NewPathResolver(filepath.Join(root, "file.txt"))
	assert.ErrorContains(t, err, "not a directory")
}

func TestFindRoot_Explicit(t *testing.T) {
	root, err := FindRoot("/some/dir")
	require.NoError(t, err)
	assert.Equal(t, "/some/dir", root)
}

func TestFindRoot_Fallback(t *testing.T) {
	root, err := FindRoot("")
	require.NoError(t, err)
	assert.NotEmpty(t, root)
}

func TestDigest(t *testing.T) {
	root := t.TempDir()
	p := filepath.Join(root, "requirements.txt")
	require.NoError(t, os.WriteFile(p, []byte("abc"), 0o644))

	sum, err := Digest(p)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum)

	_, err = Digest(filepath.Join(root, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindPackages(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"ml_toast/__init__.py",
		"ml_toast/embed/__init__.py",
		"ml_toast/cluster/__init__.py",
		"ml_toast/cluster/kmeans.py",
		"ml_toast/data/sample.csv",
		"ml_toast/data/nested/__init__.py",
		"tests/__init__.py",
		"tests/unit/__init__.py",
		".venv/lib/__init__.py",
		"ml_toast.egg-info/__init__.py",
		"setup.py",
	)

	got, err := FindPackages(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ml_toast",
		"ml_toast.cluster",
		"ml_toast.embed",
		"tests",
		"tests.unit",
	}, got)
}

func TestFindPackages_Exclude(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"ml_toast/__init__.py",
		"tests/__init__.py",
		"tests/unit/__init__.py",
	)

	got, err := FindPackages(root, []string{"tests"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ml_toast", "tests.unit"}, got)

	got, err = FindPackages(root, []string{"tests", "tests.*"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ml_toast"}, got)
}

func TestFindPackages_BadPattern(t *testing.T) {
	_, err := FindPackages(t.TempDir(), []string{"["})
	assert.Error(t, err)
}

func TestFindPackages_Empty(t *testing.T) {
	got, err := FindPackages(t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindPackages_FollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	shared := t.TempDir()
	touch(t, root, "pkg/__init__.py")
	touch(t, shared, "sub/__init__.py", "sub/deep/__init__.py")

	if err := os.Symlink(filepath.Join(shared, "sub"), filepath.Join(root, "pkg", "sub")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	// A link back to an ancestor must not make the scan loop.
	require.NoError(t, os.Symlink(filepath.Join(root, "pkg"), filepath.Join(root, "pkg", "sub", "deep", "loop")))

	got, err := FindPackages(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg", "pkg.sub", "pkg.sub.deep", "pkg.sub.deep.loop"}, got)
}

func TestFindPackages_UnreadableSubdirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits do not apply to root")
	}
	root := t.TempDir()
	touch(t, root, "ml_toast/__init__.py", "locked/__init__.py", "locked/inner/__init__.py")

	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o311))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	got, err := FindPackages(root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"locked", "ml_toast"}, got)
}

func TestFindPackages_MissingRoot(t *testing.T) {
	_, err := FindPackages(filepath.Join(t.TempDir(), "missing"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
