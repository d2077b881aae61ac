package userscripts_test

import (
	"context"
	"os"
	"testing"

	hberrors "github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/testutil"
	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/arthur-debert/homebuild/pkg/userscripts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstall_DefaultBinDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	mfs := testutil.NewMemoryFS()
	require.NoError(t, mfs.WriteFile("/cfg/bin/foo", []byte("#!/bin/sh\n"), 0644))

	linker := userscripts.New(mfs, "~/.bin")
	err := linker.Install(context.Background(), []types.Script{
		{Name: "foo", Source: "/cfg/bin/foo", User: true},
	})
	require.NoError(t, err)

	info, err := mfs.Stat("/home/tester/.bin")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	info, err = mfs.Stat("/cfg/bin/foo")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	testutil.AssertSymlink(t, mfs, "/home/tester/.bin/foo", "/cfg/bin/foo")
}

func TestInstall_OrderAndReplacement(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	require.NoError(t, mfs.WriteFile("/cfg/a/tool", []byte("a"), 0644))
	require.NoError(t, mfs.WriteFile("/cfg/b/other", []byte("b"), 0644))
	require.NoError(t, mfs.WriteFile("/opt/bin/tool", []byte("stale copy"), 0755))

	linker := userscripts.New(mfs, "/opt/bin")
	err := linker.Install(context.Background(), []types.Script{
		{Name: "tool", Source: "/cfg/a/tool"},
		{Name: "other", Source: "/cfg/b/other"},
	})
	require.NoError(t, err)

	testutil.AssertSymlink(t, mfs, "/opt/bin/tool", "/cfg/a/tool")
	testutil.AssertSymlink(t, mfs, "/opt/bin/other", "/cfg/b/other")
	assert.Equal(t, []string{
		"mkdir /opt/bin",
		"chmod /cfg/a/tool",
		"remove /opt/bin/tool",
		"symlink /opt/bin/tool",
		"chmod /cfg/b/other",
		"symlink /opt/bin/other",
	}, mfs.Ops()[3:])
}

func TestInstall_Failures(t *testing.T) {
	t.Run("missing_source_stops_installation", func(t *testing.T) {
		mfs := testutil.NewMemoryFS()
		require.NoError(t, mfs.WriteFile("/cfg/second", []byte("x"), 0644))

		err := userscripts.New(mfs, "/opt/bin").Install(context.Background(), []types.Script{
			{Name: "first", Source: "/cfg/missing"},
			{Name: "second", Source: "/cfg/second"},
		})

		require.Error(t, err)
		assert.True(t, hberrors.IsErrorCode(err, hberrors.ErrPermission))
		testutil.AssertNotExists(t, mfs, "/opt/bin/second")
	})

	t.Run("bin_dir_cannot_be_created", func(t *testing.T) {
		mfs := testutil.NewMemoryFS()
		mfs.WithError("/opt/bin", os.ErrPermission)

		err := userscripts.New(mfs, "/opt/bin").Install(context.Background(), []types.Script{
			{Name: "foo", Source: "/cfg/foo"},
		})

		require.Error(t, err)
		assert.True(t, hberrors.IsErrorCode(err, hberrors.ErrDirCreate))
	})

	t.Run("symlink_failure_is_symlink_error", func(t *testing.T) {
		mfs := testutil.NewMemoryFS()
		require.NoError(t, mfs.WriteFile("/cfg/foo", []byte("x"), 0644))
		mfs.WithError("/opt/bin/foo", os.ErrPermission)

		err := userscripts.New(mfs, "/opt/bin").Install(context.Background(), []types.Script{
			{Name: "foo", Source: "/cfg/foo"},
		})

		require.Error(t, err)
		assert.True(t, hberrors.IsErrorCode(err, hberrors.ErrSymlink))
	})

	t.Run("cancelled_context", func(t *testing.T) {
		mfs := testutil.NewMemoryFS()
		require.NoError(t, mfs.WriteFile("/cfg/foo", []byte("x"), 0644))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := userscripts.New(mfs, "/opt/bin").Install(ctx, []types.Script{{Name: "foo", Source: "/cfg/foo"}})

		assert.True(t, hberrors.IsErrorCode(err, hberrors.ErrCancelled))
		testutil.AssertNotExists(t, mfs, "/opt/bin/foo")
	})
}

func TestDestination(t *testing.T) {
	assert.Equal(t, "/opt/bin/foo.sh", userscripts.Destination("/opt/bin", types.Script{Source: "/cfg/scripts/foo.sh"}))
}
