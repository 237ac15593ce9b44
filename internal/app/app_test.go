package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/fgen/config"
	"github.com/teranos/fgen/editor"
	"github.com/teranos/fgen/engine"
	"github.com/teranos/fgen/errors"
	"github.com/teranos/fgen/fsys"
	fgentest "github.com/teranos/fgen/internal/testing"
	"github.com/teranos/fgen/journal"
	"github.com/teranos/fgen/settings"
	"github.com/teranos/fgen/version"
)

type recorder struct {
	runs []journal.Run
}

func (r *recorder) Record(_ context.Context, run journal.Run) error {
	r.runs = append(r.runs, run)
	return nil
}

type failingProvider struct{}

func (failingProvider) Settings(context.Context) (settings.Result, error) {
	return settings.Result{}, errors.New("prompt cancelled")
}

func newService(t *testing.T, cfg *config.Config) (*Service, *fsys.Billy, *recorder) {
	t.Helper()

	mem := fsys.Memory()
	require.NoError(t, mem.Underlying().MkdirAll("/work/src", 0755))

	rec := &recorder{}
	s, err := New(Options{
		Config:  cfg,
		FS:      mem,
		Journal: rec,
		Logger:  zaptest.NewLogger(t).Sugar(),
		WorkDir: "/work",
	})
	require.NoError(t, err)
	return s, mem, rec
}

func TestRun_CreateAtTarget(t *testing.T) {
	s, mem, rec := newService(t, nil)

	static, err := s.StaticSettings("user card", nil, []string{"test,translation"})
	require.NoError(t, err)

	res, err := s.Run(context.Background(), Request{
		Mode:     engine.ModeCreate,
		Target:   "src",
		Settings: static,
	})
	require.NoError(t, err)

	assert.Equal(t, "/work/src/user-card", res.Directory)
	assert.True(t, fsys.IsRegular(mem, "/work/src/user-card/UserCard.tsx"))
	assert.True(t, fsys.IsRegular(mem, "/work/src/user-card/UserCard.module.css"))
	assert.True(t, fsys.IsRegular(mem, "/work/src/user-card/index.ts"))
	assert.False(t, fsys.IsRegular(mem, "/work/src/user-card/UserCard.test.tsx"))

	require.Len(t, rec.runs, 1)
	assert.Equal(t, journal.StatusSucceeded, rec.runs[0].Status)
	assert.Equal(t, res.RunID, rec.runs[0].ID)
	assert.Equal(t, "create", rec.runs[0].Mode)
}

func TestRun_ConfiguredRoot(t *testing.T) {
	cfg := config.Default()
	cfg.RootDirectory = "src"
	s, mem, _ := newService(t, cfg)

	static, err := s.StaticSettings("Badge", nil, nil)
	require.NoError(t, err)

	res, err := s.Run(context.Background(), Request{Mode: engine.ModeCreate, Settings: static})
	require.NoError(t, err)
	assert.Equal(t, "/work/src/badge", res.Directory)
	assert.True(t, fsys.IsRegular(mem, "/work/src/badge/Badge.tsx"))
}

func TestRun_AddFailureIsJournaled(t *testing.T) {
	s, mem, rec := newService(t, nil)
	require.NoError(t, mem.Underlying().MkdirAll("/work/src/card", 0755))

	static, err := s.StaticSettings("Card", nil, nil)
	require.NoError(t, err)

	_, err = s.Run(context.Background(), Request{
		Mode:     engine.ModeAdd,
		Target:   "/work/src/card",
		Settings: static,
	})
	require.Error(t, err)
	assert.True(t, errors.IsPreconditionError(err))
	assert.False(t, fsys.IsRegular(mem, "/work/src/card/Card.tsx"))

	require.Len(t, rec.runs, 1)
	assert.Equal(t, journal.StatusFailed, rec.runs[0].Status)
	assert.Contains(t, rec.runs[0].Error, "precondition")
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	s, mem, rec := newService(t, nil)

	static, err := s.StaticSettings("Card", nil, nil)
	require.NoError(t, err)

	res, err := s.Run(context.Background(), Request{
		Mode:     engine.ModeCreate,
		Target:   "src",
		Settings: static,
		DryRun:   true,
	})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.NotEmpty(t, res.Files)
	assert.False(t, fsys.IsDir(mem, "/work/src/card"))
	assert.Empty(t, rec.runs)
}

func TestRun_SettingsErrorNotJournaled(t *testing.T) {
	s, _, rec := newService(t, nil)

	_, err := s.Run(context.Background(), Request{Mode: engine.ModeCreate, Settings: failingProvider{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt cancelled")
	assert.Empty(t, rec.runs)
}

func TestRun_EmptyNameIsJournaled(t *testing.T) {
	s, _, rec := newService(t, nil)

	_, err := s.Run(context.Background(), Request{
		Mode:     engine.ModeAdd,
		Settings: settings.Static{Name: "  "},
	})
	require.Error(t, err)
	assert.True(t, errors.IsInputError(err))

	require.Len(t, rec.runs, 1)
	assert.Equal(t, "add", rec.runs[0].Mode)
	assert.NotEmpty(t, rec.runs[0].ID)
}

func TestRun_UnknownMode(t *testing.T) {
	s, _, _ := newService(t, nil)
	_, err := s.Run(context.Background(), Request{Mode: "delete", Settings: settings.Static{Name: "X"}, DryRun: true})
	assert.True(t, errors.IsInputError(err))
}

func TestStaticSettings(t *testing.T) {
	cfg := config.Default()
	tc := cfg.Templates["test"]
	tc.Include = false
	cfg.Templates["test"] = tc
	s, _, _ := newService(t, cfg)

	static, err := s.StaticSettings("Card", []string{"test"}, []string{"barrel"})
	require.NoError(t, err)
	assert.True(t, static.Enabled["test"])
	assert.False(t, static.Enabled["barrel"])
	assert.True(t, static.Enabled["component"])

	_, err = s.StaticSettings("Card", []string{"storybook"}, nil)
	assert.True(t, errors.IsInputError(err))
}

func TestNew_RequiresNewerVersion(t *testing.T) {
	cfg := config.Default()
	cfg.Requires = ">= 2.0.0"

	_, err := New(Options{Config: cfg, FS: fsys.Memory(), Version: &version.Info{Version: "1.3.0"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not satisfy")

	_, err = New(Options{Config: cfg, FS: fsys.Memory(), Version: &version.Info{Version: "2.1.0"}})
	assert.NoError(t, err)
}

func TestSetConfig_RejectsInvalid(t *testing.T) {
	s, _, _ := newService(t, nil)
	before := s.Config()

	bad := config.Default()
	bad.EOL = "nope"
	assert.Error(t, s.SetConfig(bad))
	assert.Same(t, before, s.Config())
}

func TestOpenerFor(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.Command = "code --reuse-window"

	assert.IsType(t, &editor.Command{}, OpenerFor(cfg, true))
	assert.IsType(t, editor.Noop{}, OpenerFor(cfg, false))

	cfg.Editor.Enabled = false
	assert.IsType(t, editor.Noop{}, OpenerFor(cfg, true))

	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")
	cfg = config.Default()
	assert.IsType(t, editor.Noop{}, OpenerFor(cfg, true))
}

func TestOpenJournal_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.Journal.Enabled = false
	j, err := OpenJournal(cfg)
	require.NoError(t, err)
	assert.Nil(t, j)

	cfg.Journal.Enabled = true
	cfg.Journal.Path = ":memory:"
	j, err = OpenJournal(cfg)
	require.NoError(t, err)
	require.NotNil(t, j)
	defer j.Close()

	require.NoError(t, j.Record(context.Background(), journal.Run{ID: "x", StartedAt: time.Now(), FinishedAt: time.Now()}))
}

func TestRun_RecordsIntoJournal(t *testing.T) {
	j := fgentest.CreateTestJournal(t)
	mem := fsys.Memory()
	require.NoError(t, mem.Underlying().MkdirAll("/work/src", 0755))

	s, err := New(Options{
		FS:      mem,
		Journal: j,
		Logger:  zaptest.NewLogger(t).Sugar(),
		WorkDir: "/work",
	})
	require.NoError(t, err)

	static, err := s.StaticSettings("Badge", nil, nil)
	require.NoError(t, err)
	res, err := s.Run(t.Context(), Request{Mode: engine.ModeCreate, Target: "/work/src", Settings: static})
	require.NoError(t, err)

	run, err := j.Get(t.Context(), res.RunID)
	require.NoError(t, err)
	assert.Equal(t, "Badge", run.Module)
	assert.Equal(t, string(engine.ModeCreate), run.Mode)
	assert.Equal(t, len(res.Files), run.FileCount)
}
