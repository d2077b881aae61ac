package builder

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/arthur-debert/homebuild/pkg/config"
	hberrors "github.com/arthur-debert/homebuild/pkg/errors"
	"github.com/arthur-debert/homebuild/pkg/testutil"
	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRunner implements executor.Runner for testing
type MockRunner struct {
	mock.Mock
	order []string
}

func (m *MockRunner) Run(ctx context.Context, script types.Script) error {
	m.order = append(m.order, script.Name)
	args := m.Called(script.Name)
	return args.Error(0)
}

// MockInstaller implements Installer for testing
type MockInstaller struct {
	mock.Mock
}

func (m *MockInstaller) Install(ctx context.Context, scripts []types.Script) error {
	args := m.Called(scripts)
	return args.Error(0)
}

func newTestBuilder(t *testing.T, mfs *testutil.MemoryFS, runner *MockRunner, installer Installer) *Builder {
	t.Helper()
	opts := Options{
		Settings: config.Default(),
		FS:       mfs,
		Runner:   runner,
	}
	if installer != nil {
		opts.Installer = installer
	}
	return New(opts)
}

func TestBuild_PhaseOrder(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/home", 0755))

	runner := &MockRunner{}
	runner.On("Run", mock.Anything).Return(nil)
	installer := &MockInstaller{}
	installer.On("Install", mock.Anything).Return(nil)

	child := testutil.Entity("child",
		[]types.FileLink{{Name: "post", Source: "/cfg/post", Destination: "/home/.post", Post: true}},
		[]types.Script{{Name: "early", Build: true, Stage: 0}},
	)
	root := testutil.Entity("root",
		[]types.FileLink{{Name: "pre", Source: "/cfg/pre", Destination: "/home/.pre", Pre: true}},
		[]types.Script{
			{Name: "late", Build: true, Stage: 10},
			{Name: "tool", Source: "/cfg/tool", User: true},
		},
		child,
	)

	b := newTestBuilder(t, mfs, runner, installer)
	require.NoError(t, b.Build(context.Background(), root))

	assert.Equal(t, []string{"symlink /home/.pre", "symlink /home/.post"}, mfs.Ops()[1:])
	assert.Equal(t, []string{"early", "late"}, runner.order)
	installer.AssertCalled(t, "Install", []types.Script{{Name: "tool", Source: "/cfg/tool", User: true}})
	testutil.AssertSymlink(t, mfs, "/home/.pre", "/cfg/pre")
	testutil.AssertSymlink(t, mfs, "/home/.post", "/cfg/post")
}

func TestBuild_BuildScriptFailureStopsLaterPhases(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/home", 0755))

	runner := &MockRunner{}
	runner.On("Run", "first").Return(nil)
	runner.On("Run", "fails").Return(hberrors.NewBuildScriptError("fails", 1, nil))
	installer := &MockInstaller{}

	root := testutil.Entity("root",
		[]types.FileLink{
			{Name: "pre", Source: "/cfg/pre", Destination: "/home/.pre", Pre: true},
			{Name: "post", Source: "/cfg/post", Destination: "/home/.post", Post: true},
		},
		[]types.Script{
			{Name: "first", Build: true, Stage: 1},
			{Name: "fails", Build: true, Stage: 2},
			{Name: "never", Build: true, Stage: 3},
			{Name: "tool", Source: "/cfg/tool", User: true},
		},
	)

	err := newTestBuilder(t, mfs, runner, installer).Build(context.Background(), root)

	require.Error(t, err)
	assert.True(t, hberrors.IsErrorCode(err, hberrors.ErrBuildScript))
	assert.Contains(t, err.Error(), "run-build")
	assert.Equal(t, []string{"first", "fails"}, runner.order)
	testutil.AssertSymlink(t, mfs, "/home/.pre", "/cfg/pre")
	testutil.AssertNotExists(t, mfs, "/home/.post")
	installer.AssertNotCalled(t, "Install", mock.Anything)
}

func TestBuild_SymlinkFailureAbortsBeforeScripts(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/home", 0755))
	mfs.WithError("/home/.first", os.ErrPermission)

	runner := &MockRunner{}
	installer := &MockInstaller{}

	root := testutil.Entity("root",
		[]types.FileLink{
			{Name: "first", Source: "/cfg/first", Destination: "/home/.first", Pre: true},
			{Name: "second", Source: "/cfg/second", Destination: "/home/.second", Pre: true},
		},
		[]types.Script{{Name: "script", Build: true}},
	)

	err := newTestBuilder(t, mfs, runner, installer).Build(context.Background(), root)

	require.Error(t, err)
	assert.True(t, hberrors.IsErrorCode(err, hberrors.ErrSymlink))
	assert.Equal(t, "/home/.first", hberrors.GetErrorDetails(err)["destination"])
	testutil.AssertNotExists(t, mfs, "/home/.second")
	assert.Empty(t, runner.order)
	installer.AssertNotCalled(t, "Install", mock.Anything)
}

func TestBuild_PostLinkFailureSkipsUserScripts(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	installer := &MockInstaller{}

	root := testutil.Entity("root",
		[]types.FileLink{{Name: "post", Source: "/cfg/post", Destination: "/missing/dir/.post", Post: true}},
		[]types.Script{{Name: "tool", Source: "/cfg/tool", User: true}},
	)

	err := newTestBuilder(t, mfs, &MockRunner{}, installer).Build(context.Background(), root)

	require.Error(t, err)
	assert.True(t, hberrors.IsErrorCode(err, hberrors.ErrSymlink))
	installer.AssertNotCalled(t, "Install", mock.Anything)
}

func TestBuild_InstallerErrorPropagates(t *testing.T) {
	installErr := errors.New("disk full")
	installer := &MockInstaller{}
	installer.On("Install", mock.Anything).Return(installErr)

	err := newTestBuilder(t, testutil.NewMemoryFS(), &MockRunner{}, installer).
		Build(context.Background(), testutil.Entity("root", nil, nil))

	assert.ErrorIs(t, err, installErr)
	assert.Contains(t, err.Error(), "link-user")
}

func TestBuild_Cancelled(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/home", 0755))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := testutil.Entity("root",
		[]types.FileLink{{Name: "pre", Source: "/cfg/pre", Destination: "/home/.pre", Pre: true}},
		nil,
	)

	err := newTestBuilder(t, mfs, &MockRunner{}, &MockInstaller{}).Build(ctx, root)

	assert.True(t, hberrors.IsErrorCode(err, hberrors.ErrCancelled))
	testutil.AssertNotExists(t, mfs, "/home/.pre")
}

func TestBuild_DefaultInstallerUsesSettings(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	mfs := testutil.NewMemoryFS()
	require.NoError(t, mfs.WriteFile("/cfg/bin/foo", []byte("#!/bin/sh\n"), 0644))

	root := testutil.Entity("root", nil, []types.Script{{Name: "foo", Source: "/cfg/bin/foo", User: true}})

	require.NoError(t, newTestBuilder(t, mfs, &MockRunner{}, nil).Build(context.Background(), root))

	testutil.AssertSymlink(t, mfs, "/home/tester/.bin/foo", "/cfg/bin/foo")
}

func TestBuild_Idempotent(t *testing.T) {
	mfs := testutil.NewMemoryFS()
	require.NoError(t, mfs.MkdirAll("/home", 0755))
	require.NoError(t, mfs.WriteFile("/home/.a", []byte("real file"), 0644))
	runner := &MockRunner{}
	runner.On("Run", "setup").Return(nil)
	installer := &MockInstaller{}
	installer.On("Install", mock.Anything).Return(nil)

	root := testutil.Entity("root",
		[]types.FileLink{{Name: "a", Source: "/cfg/a", Destination: "/home/.a", Pre: true, Post: true}},
		[]types.Script{{Name: "setup", Build: true}},
	)

	b := newTestBuilder(t, mfs, runner, installer)
	require.NoError(t, b.Build(context.Background(), root))
	first := mfs.Paths()
	require.NoError(t, b.Build(context.Background(), root))

	assert.Equal(t, first, mfs.Paths())
	testutil.AssertSymlink(t, mfs, "/home/.a", "/cfg/a")
	assert.Equal(t, []string{"setup", "setup"}, runner.order, "build scripts rerun every build")
}

func TestPlan_RespectsVisitOnce(t *testing.T) {
	shared := testutil.Entity("shared", []types.FileLink{{Name: "s", Pre: true}}, nil)
	root := testutil.Entity("root", nil, nil, shared, shared)

	settings, err := config.New(map[string]interface{}{config.KeyVisitOnce: true})
	require.NoError(t, err)

	b := New(Options{Settings: settings, FS: testutil.NewMemoryFS(), Runner: &MockRunner{}, Installer: &MockInstaller{}})
	assert.Len(t, b.Plan(root).Pre, 1)

	b = newTestBuilder(t, testutil.NewMemoryFS(), &MockRunner{}, &MockInstaller{})
	assert.Len(t, b.Plan(root).Pre, 2)
}
