package buildstep_test

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/goliatone/nwdi-cpd/internal/buildstep"
	"github.com/goliatone/nwdi-cpd/internal/component"
	"github.com/goliatone/nwdi-cpd/internal/executor"
)

type fakeExecutor struct {
	received []component.Component
	result   *executor.Result
	err      error
}

func (f *fakeExecutor) Execute(_ context.Context, components []component.Component) (*executor.Result, error) {
	f.received = components
	if f.result == nil {
		f.result = &executor.Result{Status: executor.StatusCompleted}
	}
	return f.result, f.err
}

type fakeDetector struct {
	paths []string
	err   error
	dir   string
	since string
}

func (d *fakeDetector) Changed(_ context.Context, repoDir, since string) ([]string, error) {
	d.dir, d.since = repoDir, since
	return d.paths, d.err
}

func sampleConfiguration() *component.DevelopmentConfiguration {
	return &component.DevelopmentConfiguration{
		Name: "EXMPL_DEV",
		Compartments: []component.Compartment{
			{
				Vendor: "example.com",
				Name:   "EXMPL_APP",
				State:  component.StateSource,
				Components: []component.Component{
					{Vendor: "example.com", Name: "dc1", Type: component.TypeJava, Path: "EXMPL_APP/dc1"},
					{Vendor: "example.com", Name: "app/dictionary", Type: component.TypeDictionary, Path: "EXMPL_APP/dict"},
					{Vendor: "example.com", Name: "wd", Type: component.TypeWebDynpro, Path: "EXMPL_APP/wd"},
				},
			},
			{
				Vendor: "sap.com",
				Name:   "SAP_BUILDT",
				State:  component.StateArchive,
				Components: []component.Component{
					{Vendor: "sap.com", Name: "tc/bi/anttasks", Type: component.TypeJava},
				},
			},
		},
	}
}

var timingLine = regexp.MustCompile(`^Running CPD\.\.\.\(\d+\.\d{6} sec\.\)\.\n$`)

func newStep(t *testing.T, opts buildstep.Options, exec *fakeExecutor) (*buildstep.Step, *buildstep.Build) {
	t.Helper()
	var seen buildstep.Build
	opts.NewExecutor = func(b buildstep.Build) (executor.Executor, error) {
		seen = b
		return exec, nil
	}
	step, err := buildstep.New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return step, &seen
}

func TestStep_Metadata(t *testing.T) {
	step, _ := newStep(t, buildstep.Options{}, &fakeExecutor{})
	if got := step.DisplayName(); got != "NWDI CPD Builder" {
		t.Fatalf("DisplayName() = %q", got)
	}

	applicable := map[string]bool{"nwdi": true, "maven": false, "": false}
	for projectType, want := range applicable {
		if got := step.Applicable(projectType); got != want {
			t.Errorf("Applicable(%q) = %v, want %v", projectType, got, want)
		}
	}
	if step.RunCPD() {
		t.Fatal("expected RunCPD to default to false")
	}
}

func TestStep_Perform_Disabled(t *testing.T) {
	exec := &fakeExecutor{}
	fs := afero.NewMemMapFs()
	step, _ := newStep(t, buildstep.Options{Fs: fs}, exec)

	var log bytes.Buffer
	ok, err := step.Perform(context.Background(), buildstep.Build{Workspace: "/ws"}, &log)
	if err != nil || !ok {
		t.Fatalf("Perform = %v, %v; want true, nil", ok, err)
	}
	if log.Len() != 0 {
		t.Fatalf("expected no console output, got %q", log.String())
	}
	if exec.received != nil {
		t.Fatal("executor should not run")
	}
	if exists, _ := afero.DirExists(fs, "/ws/cpd"); exists {
		t.Fatal("result folder should not be created")
	}
}

func TestStep_Perform_RunsSourceComponents(t *testing.T) {
	exec := &fakeExecutor{}
	fs := afero.NewMemMapFs()
	step, seen := newStep(t, buildstep.Options{RunCPD: true, Fs: fs}, exec)

	var log bytes.Buffer
	ok, err := step.Perform(context.Background(), buildstep.Build{
		Workspace:     "/ws",
		Configuration: sampleConfiguration(),
		ProjectType:   "nwdi",
	}, &log)
	if err != nil || !ok {
		t.Fatalf("Perform = %v, %v; want true, nil", ok, err)
	}

	var names []string
	for _, c := range exec.received {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"dc1", "wd"}, names); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}

	if exists, _ := afero.DirExists(fs, "/ws/cpd"); !exists {
		t.Fatal("expected result folder /ws/cpd")
	}
	if !timingLine.MatchString(log.String()) {
		t.Fatalf("unexpected console output %q", log.String())
	}
	if _, err := uuid.Parse(seen.ID); err != nil {
		t.Fatalf("expected a generated build id, got %q: %v", seen.ID, err)
	}
}

func TestStep_Perform_KeepsBuildID(t *testing.T) {
	step, seen := newStep(t, buildstep.Options{RunCPD: true, Fs: afero.NewMemMapFs()}, &fakeExecutor{})
	if _, err := step.Perform(context.Background(), buildstep.Build{ID: "build-7", Workspace: "/ws"}, nil); err != nil {
		t.Fatalf("Perform returned error: %v", err)
	}
	if seen.ID != "build-7" {
		t.Fatalf("build id = %q, want build-7", seen.ID)
	}
}

func TestStep_Perform_ResultFolderNotCreatable(t *testing.T) {
	exec := &fakeExecutor{}
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	step, _ := newStep(t, buildstep.Options{RunCPD: true, Fs: fs}, exec)

	var log bytes.Buffer
	ok, err := step.Perform(context.Background(), buildstep.Build{Workspace: "/ws", Configuration: sampleConfiguration()}, &log)
	if err != nil || ok {
		t.Fatalf("Perform = %v, %v; want false, nil", ok, err)
	}
	if got, want := log.String(), "Can't create CPD result folder ('/ws/cpd')!\n"; got != want {
		t.Fatalf("console output = %q, want %q", got, want)
	}
	if exec.received != nil {
		t.Fatal("executor should not run")
	}

	_, err = step.Run(context.Background(), buildstep.Build{Workspace: "/ws"}, nil)
	if !buildstep.IsResultFolderError(err) {
		t.Fatalf("expected ResultFolderError, got %v", err)
	}
}

func TestStep_Perform_ExecutorErrorStillReportsTiming(t *testing.T) {
	antErr := errors.New("BUILD FAILED")
	step, _ := newStep(t, buildstep.Options{RunCPD: true, Fs: afero.NewMemMapFs()}, &fakeExecutor{err: antErr})

	var log bytes.Buffer
	ok, err := step.Perform(context.Background(), buildstep.Build{Workspace: "/ws", Configuration: sampleConfiguration()}, &log)
	if ok {
		t.Fatal("expected Perform to report failure")
	}
	if !errors.Is(err, antErr) {
		t.Fatalf("expected %v, got %v", antErr, err)
	}
	if !timingLine.MatchString(log.String()) {
		t.Fatalf("expected timing line after failure, got %q", log.String())
	}
}

func TestStep_Perform_ChangedSince(t *testing.T) {
	exec := &fakeExecutor{}
	detector := &fakeDetector{paths: []string{"EXMPL_APP/wd/src/packages/View.java", "EXMPL_APP/dict/x.dtdictionary"}}
	step, _ := newStep(t, buildstep.Options{
		RunCPD:       true,
		ChangedSince: "HEAD~3",
		Detector:     detector,
		Fs:           afero.NewMemMapFs(),
	}, exec)

	ok, err := step.Perform(context.Background(), buildstep.Build{Workspace: "/ws", Configuration: sampleConfiguration()}, nil)
	if err != nil || !ok {
		t.Fatalf("Perform = %v, %v; want true, nil", ok, err)
	}

	if len(exec.received) != 1 || exec.received[0].Name != "wd" {
		t.Fatalf("expected only wd, got %+v", exec.received)
	}
	if detector.dir != "/ws" || detector.since != "HEAD~3" {
		t.Fatalf("detector called with (%q, %q)", detector.dir, detector.since)
	}
}

func TestStep_Perform_ChangedSinceError(t *testing.T) {
	detectErr := errors.New("bad revision")
	exec := &fakeExecutor{}
	step, _ := newStep(t, buildstep.Options{
		RunCPD:       true,
		ChangedSince: "nope",
		RepoDir:      "/repo",
		Detector:     &fakeDetector{err: detectErr},
		Fs:           afero.NewMemMapFs(),
	}, exec)

	var log bytes.Buffer
	ok, err := step.Perform(context.Background(), buildstep.Build{Workspace: "/ws"}, &log)
	if ok {
		t.Fatal("expected Perform to report failure")
	}
	if !errors.Is(err, detectErr) {
		t.Fatalf("expected %v, got %v", detectErr, err)
	}
	if exec.received != nil {
		t.Fatal("executor should not run")
	}
	if !timingLine.MatchString(log.String()) {
		t.Fatalf("expected timing line after failure, got %q", log.String())
	}
}

func TestStep_Run_ReturnsExecutorResult(t *testing.T) {
	want := &executor.Result{Status: executor.StatusSkipped, Reason: "no source folders found"}
	step, _ := newStep(t, buildstep.Options{RunCPD: true, Fs: afero.NewMemMapFs()}, &fakeExecutor{result: want})

	got, err := step.Run(context.Background(), buildstep.Build{Workspace: "/ws"}, nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Run returned %+v, want the executor result", got)
	}
}

func TestResultFolder(t *testing.T) {
	tests := []struct {
		workspace, dir, want string
	}{
		{"/ws", "", "/ws/cpd"},
		{"/ws", "reports/cpd", "/ws/reports/cpd"},
		{"/ws", "/abs", "/abs"},
	}
	for _, tt := range tests {
		if got := buildstep.ResultFolder(tt.workspace, tt.dir); got != tt.want {
			t.Errorf("ResultFolder(%q, %q) = %q, want %q", tt.workspace, tt.dir, got, tt.want)
		}
	}

	if got := buildstep.ResultFolder("ws", "cpd"); !strings.HasSuffix(got, "cpd") {
		t.Errorf("ResultFolder(ws, cpd) = %q", got)
	}
}

func TestNew_RequiresExecutorFactory(t *testing.T) {
	if _, err := buildstep.New(buildstep.Options{}); err == nil {
		t.Fatal("expected error without executor factory")
	}
}
